package repo

import (
	"context"

	"gorm.io/gorm"
)

// Counter answers "how many T rows exist" straight from the pool, outside
// any unit of work.
type Counter[T any] struct {
	db *gorm.DB
}

func NewCounter[T any](db *gorm.DB) *Counter[T] { return &Counter[T]{db: db} }

func (c *Counter[T]) Count(ctx context.Context) (int64, error) {
	return newQuery[T](c.db).Count(ctx)
}
