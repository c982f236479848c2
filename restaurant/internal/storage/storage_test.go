package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKV_Backends(t *testing.T) {
	t.Parallel()
	newFile := func(t *testing.T) KV {
		kv, err := NewFile(t.TempDir())
		require.NoError(t, err)
		return kv
	}
	newRedis := func(t *testing.T) KV {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return NewRedis(client, zap.NewNop())
	}
	backends := map[string]func(t *testing.T) KV{
		"memory": func(*testing.T) KV { return NewMemory() },
		"file":   newFile,
		"redis":  newRedis,
	}
	for name, newKV := range backends {
		newKV := newKV
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			kv := newKV(t)

			_, ok, err := kv.Get(ctx, "reservations")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, kv.Set(ctx, "reservations", `[{"id":1}]`))
			v, ok, err := kv.Get(ctx, "reservations")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, `[{"id":1}]`, v)

			require.NoError(t, kv.Set(ctx, "reservations", `[]`))
			v, _, err = kv.Get(ctx, "reservations")
			require.NoError(t, err)
			require.Equal(t, `[]`, v)

			require.NoError(t, kv.Update(ctx, "reservations", func(cur string, ok bool) (string, error) {
				require.True(t, ok)
				require.Equal(t, `[]`, cur)
				return `[{"id":2}]`, nil
			}))
			v, _, err = kv.Get(ctx, "reservations")
			require.NoError(t, err)
			require.Equal(t, `[{"id":2}]`, v)

			abort := errors.New("duplicate")
			err = kv.Update(ctx, "reservations", func(string, bool) (string, error) {
				return "", abort
			})
			require.ErrorIs(t, err, abort)
			v, _, err = kv.Get(ctx, "reservations")
			require.NoError(t, err)
			require.Equal(t, `[{"id":2}]`, v)

			require.NoError(t, kv.Update(ctx, "fresh", func(cur string, ok bool) (string, error) {
				require.False(t, ok)
				return "x", nil
			}))
			v, ok, err = kv.Get(ctx, "fresh")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "x", v)
		})
	}
}

func TestFile_SurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "reservations", `[{"id":42}]`))

	reopened, err := NewFile(dir)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "reservations")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":42}]`, v)
}

func TestPostgres_GetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	kv := NewPostgres(sqlx.NewDb(db, "sqlmock"), zap.NewNop())

	selectQ := regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = $1`)
	mock.ExpectQuery(selectQ).
		WithArgs("reservations").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	_, ok, err := kv.Get(ctx, "reservations")
	require.NoError(t, err)
	require.False(t, ok)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_store (key,value,updated_at) VALUES ($1,$2,$3) on conflict (key) do update`)).
		WithArgs("reservations", `[]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, kv.Set(ctx, "reservations", `[]`))

	mock.ExpectQuery(selectQ).
		WithArgs("reservations").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))
	v, ok, err := kv.Get(ctx, "reservations")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, v)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_UpdateConcurrentCounters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr := miniredis.RunT(t)
	newKV := func() KV {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return NewRedis(client, zap.NewNop())
	}
	kvs := []KV{newKV(), newKV()}

	const perClient = 20
	errCh := make(chan error, len(kvs)*perClient)
	var wg sync.WaitGroup
	for _, kv := range kvs {
		for i := 0; i < perClient; i++ {
			wg.Add(1)
			go func(kv KV) {
				defer wg.Done()
				errCh <- kv.Update(ctx, "counter", func(cur string, ok bool) (string, error) {
					n := 0
					if ok {
						var err error
						if n, err = strconv.Atoi(cur); err != nil {
							return "", err
						}
					}
					return strconv.Itoa(n + 1), nil
				})
			}(kv)
		}
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	v, _, err := kvs[0].Get(ctx, "counter")
	require.NoError(t, err)
	require.Equal(t, fmt.Sprint(len(kvs)*perClient), v)
}

func TestPostgres_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	kv := NewPostgres(sqlx.NewDb(db, "sqlmock"), zap.NewNop())

	lockQ := regexp.QuoteMeta(`SELECT pg_advisory_xact_lock(hashtext($1))`)
	selectQ := regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = $1 FOR UPDATE`)
	upsertQ := regexp.QuoteMeta(`INSERT INTO kv_store (key,value,updated_at) VALUES ($1,$2,$3) on conflict (key) do update`)

	mock.ExpectBegin()
	mock.ExpectExec(lockQ).WithArgs("reservations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(selectQ).
		WithArgs("reservations").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))
	mock.ExpectExec(upsertQ).
		WithArgs("reservations", `[{"id":1}]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = kv.Update(ctx, "reservations", func(cur string, ok bool) (string, error) {
		require.True(t, ok)
		require.Equal(t, `[]`, cur)
		return `[{"id":1}]`, nil
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(lockQ).WithArgs("reservations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(selectQ).
		WithArgs("reservations").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectRollback()

	abort := errors.New("not found")
	err = kv.Update(ctx, "reservations", func(cur string, ok bool) (string, error) {
		require.False(t, ok)
		return "", abort
	})
	require.ErrorIs(t, err, abort)

	require.NoError(t, mock.ExpectationsWereMet())
}
