package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/dailydle/internal/logger"
	"github.com/vytor/dailydle/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const kvTable = "kv_entries"

type kvRepository struct {
	db *sql.DB
}

// NewKVRepository creates a SQLite-backed KeyValueStore.
func NewKVRepository(db *sql.DB) repository.KeyValueStore {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, scope, key string) (string, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("getting entry: scope=%s, key=%s", scope, key)

	query, args, err := sqlBuilder.
		Select("value").
		From(kvTable).
		Where(squirrel.Eq{"scope": scope, "key": key}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return "", false, err
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("entry not found: scope=%s, key=%s", scope, key)
		return "", false, nil
	}
	if err != nil {
		log.Error("failed to get entry: %v", err)
		return "", false, err
	}
	return value, true, nil
}

func (r *kvRepository) Set(ctx context.Context, scope, key, value string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("setting entry: scope=%s, key=%s, bytes=%d", scope, key, len(value))

	query, args, err := sqlBuilder.
		Insert(kvTable).
		Columns("scope", "key", "value").
		Values(scope, key, value).
		Suffix("ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to set entry: %v", err)
		return err
	}
	return nil
}

func (r *kvRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
