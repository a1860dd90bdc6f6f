package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query is a lazy, immutable query over T. Every builder call returns a new
// Query; nothing touches the store until Find, First or Count.
type Query[T any] struct {
	db *gorm.DB
}

func newQuery[T any](db *gorm.DB) Query[T] {
	return Query[T]{db: db.Model(new(T)).Session(&gorm.Session{})}
}

func (q Query[T]) next(db *gorm.DB) Query[T] {
	return Query[T]{db: db.Session(&gorm.Session{})}
}

func (q Query[T]) Where(query any, args ...any) Query[T] {
	return q.next(q.db.Where(query, args...))
}

// WhereID filters on the primary key column.
func (q Query[T]) WhereID(id any) Query[T] {
	return q.next(q.db.Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}))
}

// Include eager-loads the named relations.
func (q Query[T]) Include(relations ...string) Query[T] {
	db := q.db
	for _, r := range relations {
		db = db.Preload(r)
	}
	return q.next(db)
}

func (q Query[T]) Order(value any) Query[T] { return q.next(q.db.Order(value)) }
func (q Query[T]) Limit(n int) Query[T]     { return q.next(q.db.Limit(n)) }
func (q Query[T]) Offset(n int) Query[T]    { return q.next(q.db.Offset(n)) }

func (q Query[T]) Find(ctx context.Context) ([]T, error) {
	out := make([]T, 0)
	if err := q.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// First returns the first match, or nil, nil when there is none.
func (q Query[T]) First(ctx context.Context) (*T, error) {
	var out T
	err := q.db.WithContext(ctx).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (q Query[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	db := q.db.WithContext(ctx)
	db.Statement.Preloads = nil
	err := db.Count(&n).Error
	return n, err
}
