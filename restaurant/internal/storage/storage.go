package storage

import (
	"context"

	"github.com/Astemirdum/restaurant-service/pkg/postgres"
	"github.com/Astemirdum/restaurant-service/restaurant/config"
	"github.com/Astemirdum/restaurant-service/restaurant/migrations"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// UpdateFunc derives the next value of a key from its current one. An
// error aborts the update and nothing is written.
type UpdateFunc func(current string, ok bool) (string, error)

// KV is a durable string key-value store. Get reports ok=false for an
// absent key. Update is an atomic read-modify-write of one key across
// every client sharing the backend; fn may be called more than once.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Open builds the backend selected by cfg.Storage.Driver. The returned
// close func releases backend connections.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (KV, func() error, error) {
	log = log.Named("storage")
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case DriverMemory:
		return NewMemory(), noop, nil
	case DriverFile:
		kv, err := NewFile(cfg.Storage.FileDir)
		if err != nil {
			return nil, nil, err
		}
		return kv, noop, nil
	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, errors.Wrap(err, "redis ping")
		}
		return NewRedis(client, log), client.Close, nil
	case DriverPostgres:
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgres(db, log), db.Close, nil
	default:
		return nil, nil, errors.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
