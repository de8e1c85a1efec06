package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const (
	queryCreateTable = `CREATE TABLE IF NOT EXISTS cache_entries (
						"key"      TEXT PRIMARY KEY,
						"value"    BYTEA NOT NULL,
						expires_at TIMESTAMPTZ NOT NULL)`

	queryGetByKey = `SELECT "value" FROM cache_entries WHERE "key" = $1 AND expires_at > $2`

	queryUpsert = `INSERT INTO cache_entries ("key", "value", expires_at)
				   VALUES($1, $2, $3)
				   ON CONFLICT ("key") DO UPDATE SET "value" = EXCLUDED."value", expires_at = EXCLUDED.expires_at`

	queryDeleteExpired = `DELETE FROM cache_entries WHERE expires_at <= $1`
)

// PostgresCache хранит закодированные ответы апи в одной таблице,
// чтобы несколько инстансов сервиса делили один кэш
type PostgresCache struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgres(db *sqlx.DB) *PostgresCache {
	return &PostgresCache{db: db, now: time.Now}
}

func (r *PostgresCache) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, queryCreateTable)
	return err
}

// просроченная запись считается промахом, удаляется она отдельно через DeleteExpired
func (r *PostgresCache) Get(ctx context.Context, key string) ([]byte, bool, error) {

	var value []byte
	err := r.db.GetContext(ctx, &value, queryGetByKey, key, r.now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return value, true, nil
}

func (r *PostgresCache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	_, err := r.db.ExecContext(ctx, queryUpsert, key, value, r.now().Add(ttl))
	return err
}

func (r *PostgresCache) DeleteExpired(ctx context.Context) (int64, error) {

	res, err := r.db.ExecContext(ctx, queryDeleteExpired, r.now())
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if n > 0 {
		logrus.Infof("removed %d expired cache entries", n)
	}

	return n, nil
}
