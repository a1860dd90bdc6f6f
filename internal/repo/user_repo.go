package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-addressbook/internal/domain"
)

// UserRepo adds the identity lookups the generic repository lacks. Writes go
// through the embedded GormRepository and are staged like any other entity.
type UserRepo struct {
	*GormRepository[domain.User, string]
	roles *GormRepository[domain.UserRole, string]
}

func NewUserRepo(db *gorm.DB, stage Stager) *UserRepo {
	return &UserRepo{
		GormRepository: NewGormRepository[domain.User, string](db, stage),
		roles:          NewGormRepository[domain.UserRole, string](db, stage),
	}
}

func (r *UserRepo) withRoles() Query[domain.User] {
	return r.GetAllIncluding("Roles")
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.withRoles().WhereID(id).First(ctx)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.withRoles().Where("normalized_email = ?", domain.NormalizeKey(email)).First(ctx)
}

func (r *UserRepo) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return r.withRoles().Where("normalized_user_name = ?", domain.NormalizeKey(userName)).First(ctx)
}

// List returns one page of users, newest first, and the total count.
func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	total, err := r.GetAllQueryable().Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	users, err := r.withRoles().Order("created_at desc").Offset(offset).Limit(limit).Find(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Create stages the user row followed by its role rows.
func (r *UserRepo) Create(u *domain.User) error {
	if u == nil {
		return ErrNilEntity
	}
	u.Normalize()
	if err := r.Insert(u); err != nil {
		return err
	}
	for i := range u.Roles {
		u.Roles[i].UserID = u.ID
		if err := r.roles.Insert(&u.Roles[i]); err != nil {
			return err
		}
	}
	return nil
}

// Update stages a whole-record update with the normalized columns refreshed.
func (r *UserRepo) Update(u *domain.User) error {
	if u == nil {
		return ErrNilEntity
	}
	u.Normalize()
	return r.GormRepository.Update(u)
}
