package storage

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const kvTableName = `kv_store`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Postgres struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewPostgres(db *sqlx.DB, log *zap.Logger) *Postgres {
	return &Postgres{db: db, log: log.Named("postgres")}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	q, args, err := qb.Select("value").
		From(kvTableName).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, err
	}
	var value string
	if err := p.db.GetContext(ctx, &value, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		if isUndefinedTable(err) {
			p.log.Warn("kv table missing, migrations not applied?", zap.String("q", q))
		}
		return "", false, errors.Wrap(err, "select kv")
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	q, args, err := upsertQuery(key, value)
	if err != nil {
		return err
	}
	if _, err := p.db.ExecContext(ctx, q, args...); err != nil {
		p.log.Error("Set", zap.String("q", q), zap.String("key", key), zap.Error(err))
		return errors.Wrap(err, "upsert kv")
	}
	return nil
}

// Update serialises writers of one key with a transaction-scoped advisory
// lock, which also covers a key that has no row yet.
func (p *Postgres) Update(ctx context.Context, key string, fn UpdateFunc) (err error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				p.log.Error("Update rollback", zap.Error(rbErr))
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return errors.Wrap(err, "lock kv")
	}
	q, args, err := qb.Select("value").
		From(kvTableName).
		Where(sq.Eq{"key": key}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return err
	}
	var cur string
	ok := true
	if err = tx.GetContext(ctx, &cur, q, args...); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return errors.Wrap(err, "select kv")
		}
		ok = false
	}
	next, err := fn(cur, ok)
	if err != nil {
		return err
	}
	if q, args, err = upsertQuery(key, next); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "upsert kv")
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	return nil
}

func upsertQuery(key, value string) (string, []interface{}, error) {
	return qb.Insert(kvTableName).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("on conflict (key) do update set value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable
}
