package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-addressbook/internal/domain"
)

// Repository is the data access contract shared by every entity. Reads run
// immediately; Insert, Update and Delete only stage work that the owning
// unit of work applies on Save.
type Repository[T any, ID comparable] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetAllQueryable() Query[T]
	GetByID(ctx context.Context, id ID) (*T, error)
	Insert(entity *T) error
	Update(entity *T) error
	Delete(ctx context.Context, id ID) error
	GetAllIncluding(relations ...string) Query[T]
}

// Op is one staged write, replayed inside the save transaction.
type Op func(tx *gorm.DB) error

// Stager collects staged writes.
type Stager interface {
	Stage(op Op)
}

type GormRepository[T any, ID comparable] struct {
	db    *gorm.DB
	stage Stager
}

func NewGormRepository[T any, ID comparable](db *gorm.DB, stage Stager) *GormRepository[T, ID] {
	return &GormRepository[T, ID]{db: db, stage: stage}
}

func (r *GormRepository[T, ID]) GetAll(ctx context.Context) ([]T, error) {
	return r.GetAllQueryable().Find(ctx)
}

func (r *GormRepository[T, ID]) GetAllQueryable() Query[T] {
	return newQuery[T](r.db)
}

func (r *GormRepository[T, ID]) GetByID(ctx context.Context, id ID) (*T, error) {
	return r.GetAllQueryable().WhereID(id).First(ctx)
}

func (r *GormRepository[T, ID]) GetAllIncluding(relations ...string) Query[T] {
	return r.GetAllQueryable().Include(relations...)
}

func (r *GormRepository[T, ID]) Insert(entity *T) error {
	if entity == nil {
		return ErrNilEntity
	}
	r.stage.Stage(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(entity).Error
	})
	return nil
}

// Update replaces every column of the stored row with entity's values.
// Relations are left untouched. If no row matches, Save fails with
// domain.ErrNotFound and the whole unit rolls back.
func (r *GormRepository[T, ID]) Update(entity *T) error {
	if entity == nil {
		return ErrNilEntity
	}
	r.stage.Stage(func(tx *gorm.DB) error {
		res := tx.Model(entity).Select("*").Omit(clause.Associations).Updates(entity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: update matched no %T row", domain.ErrNotFound, entity)
		}
		return nil
	})
	return nil
}

// Delete stages removal of the row with the given id. A missing row is not
// an error.
func (r *GormRepository[T, ID]) Delete(ctx context.Context, id ID) error {
	found, err := r.GetByID(ctx, id)
	if err != nil || found == nil {
		return err
	}
	return r.Remove(found)
}

// Remove stages removal of an entity the caller already loaded.
func (r *GormRepository[T, ID]) Remove(entity *T) error {
	if entity == nil {
		return ErrNilEntity
	}
	r.stage.Stage(func(tx *gorm.DB) error {
		return tx.Delete(entity).Error
	})
	return nil
}
