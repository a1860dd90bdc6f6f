// Package uow scopes repositories to one unit of work. Writes staged through
// any repository of the unit are applied together, in staging order, in a
// single transaction on Save.
package uow

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm"

	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/internal/repo"
)

type UnitOfWork struct {
	db *gorm.DB

	mu      sync.Mutex
	repos   map[reflect.Type]any
	pending []repo.Op
}

func New(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db, repos: make(map[reflect.Type]any)}
}

// Entity returns the unit's repository for T, creating it on first use.
// Later calls in the same unit return the same instance.
func Entity[T any, ID comparable](u *UnitOfWork) *repo.GormRepository[T, ID] {
	key := reflect.TypeFor[*repo.GormRepository[T, ID]]()

	u.mu.Lock()
	defer u.mu.Unlock()
	if r, ok := u.repos[key]; ok {
		return r.(*repo.GormRepository[T, ID])
	}
	r := repo.NewGormRepository[T, ID](u.db, u)
	u.repos[key] = r
	return r
}

// Users returns the unit's user repository.
func (u *UnitOfWork) Users() *repo.UserRepo {
	key := reflect.TypeFor[*repo.UserRepo]()

	u.mu.Lock()
	defer u.mu.Unlock()
	if r, ok := u.repos[key]; ok {
		return r.(*repo.UserRepo)
	}
	r := repo.NewUserRepo(u.db, u)
	u.repos[key] = r
	return r
}

func (u *UnitOfWork) Stage(op repo.Op) {
	u.mu.Lock()
	u.pending = append(u.pending, op)
	u.mu.Unlock()
}

// Pending reports how many writes are waiting for Save.
func (u *UnitOfWork) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.pending)
}

// Save commits every staged write or none of them. The queue is emptied
// either way.
func (u *UnitOfWork) Save(ctx context.Context) error {
	u.mu.Lock()
	ops := u.pending
	u.pending = nil
	u.mu.Unlock()

	if len(ops) == 0 {
		return nil
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if err := op(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if repo.IsConstraintViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrConstraintViolation, err)
	}
	return err
}

// Discard drops staged writes without touching the store.
func (u *UnitOfWork) Discard() {
	u.mu.Lock()
	u.pending = nil
	u.mu.Unlock()
}

func (u *UnitOfWork) DB() *gorm.DB { return u.db }

// Do runs fn with a unit of work bound to a single pooled connection. The
// connection is released and unsaved writes are dropped when fn returns.
func Do(ctx context.Context, db *gorm.DB, fn func(u *UnitOfWork) error) error {
	return db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		u := New(conn.Session(&gorm.Session{NewDB: true}))
		defer u.Discard()
		return fn(u)
	})
}
