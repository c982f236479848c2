package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix = "restaurant:"

	// redisUpdateRetries bounds optimistic retries when a watched key
	// changes before the transaction commits.
	redisUpdateRetries = 100
)

var errRedisContention = errors.New("redis update: too many concurrent writers")

type Redis struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedis(client *redis.Client, log *zap.Logger) *Redis {
	return &Redis{client: client, log: log.Named("redis")}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "redis get")
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		r.log.Error("Set", zap.String("key", key), zap.Error(err))
		return errors.Wrap(err, "redis set")
	}
	return nil
}

// Update runs fn under WATCH and commits with MULTI/EXEC, retrying when
// another client changed the key in between.
func (r *Redis) Update(ctx context.Context, key string, fn UpdateFunc) error {
	k := redisKeyPrefix + key
	txf := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, k).Result()
		ok := true
		if errors.Is(err, redis.Nil) {
			ok, err = false, nil
		}
		if err != nil {
			return errors.Wrap(err, "redis get")
		}
		next, err := fn(cur, ok)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < redisUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	r.log.Error("Update", zap.String("key", key), zap.Error(errRedisContention))
	return errRedisContention
}
