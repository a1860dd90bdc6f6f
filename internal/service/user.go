package service

import (
	"context"

	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/internal/uow"
)

type UserUpdate struct {
	FirstName string
	LastName  string
	UserName  string
	Email     string
	Address   string
}

// UserService manages accounts for administrators. It is built per request
// around that request's unit of work.
type UserService struct {
	u *uow.UnitOfWork
}

func NewUserService(u *uow.UnitOfWork) *UserService { return &UserService{u: u} }

func (s *UserService) GetAllUsers(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.u.Users().List(ctx, offset, limit)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.u.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, in UserUpdate) (*domain.User, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.UserName = in.UserName
	u.Email = in.Email
	u.Address = in.Address
	if err := s.u.Users().Update(u); err != nil {
		return nil, err
	}
	if err := s.u.Save(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.u.Users().Remove(u); err != nil {
		return err
	}
	return s.u.Save(ctx)
}
