package uow

import (
	"context"

	"go-gin-addressbook/internal/domain"
)

// UserStore is the identity store view of a unit of work.
type UserStore struct {
	u *UnitOfWork
}

func NewUserStore(u *UnitOfWork) *UserStore { return &UserStore{u: u} }

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.u.Users().FindByEmail(ctx, email)
}

func (s *UserStore) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return s.u.Users().FindByUserName(ctx, userName)
}

// Create persists the user and its roles in one save.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := s.u.Users().Create(user); err != nil {
		s.u.Discard()
		return err
	}
	return s.u.Save(ctx)
}
