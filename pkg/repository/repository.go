package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Entries interface {
	EnsureSchema(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type Repository struct {
	Entries
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Entries: NewPostgres(db),
	}
}
