package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/pkg/utils"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUserName(ctx context.Context, userName string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type TokenIssuer interface {
	Issue(uid, userName, email string, roles []string) (string, time.Time, error)
}

type AuthResult struct {
	Message         string     `json:"message,omitempty"`
	IsAuthenticated bool       `json:"isAuthenticated"`
	UserName        string     `json:"userName,omitempty"`
	Email           string     `json:"email,omitempty"`
	Roles           []string   `json:"roles,omitempty"`
	Token           string     `json:"token,omitempty"`
	ExpiresOn       *time.Time `json:"expiresOn,omitempty"`
}

type RegisterInput struct {
	FirstName string
	LastName  string
	UserName  string
	Email     string
	Address   string
	Password  string
}

type AccountService struct {
	users  UserStore
	tokens TokenIssuer
	log    *zap.Logger
}

func NewAccountService(users UserStore, tokens TokenIssuer, l *zap.Logger) *AccountService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AccountService{users: users, tokens: tokens, log: l}
}

// Login returns domain.ErrNotAuthenticated for an unknown email or a wrong
// password, without telling the two apart.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrNotAuthenticated
	}
	return s.authenticated(u)
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	return s.create(ctx, in, []string{domain.RoleUser})
}

// EnsureAdmin creates an administrator unless the email is already taken.
// It reports whether a user was created.
func (s *AccountService) EnsureAdmin(ctx context.Context, in RegisterInput) (bool, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := s.create(ctx, in, []string{domain.RoleUser, domain.RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AccountService) create(ctx context.Context, in RegisterInput, roles []string) (*AuthResult, error) {
	byEmail, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if byEmail != nil {
		return nil, domain.ErrDuplicateEmail
	}
	byName, err := s.users.FindByUserName(ctx, in.UserName)
	if err != nil {
		return nil, err
	}
	if byName != nil {
		return nil, domain.ErrDuplicateUserName
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		UserName:     in.UserName,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Address:      in.Address,
	}
	for _, r := range roles {
		u.Roles = append(u.Roles, domain.UserRole{UserID: u.ID, Role: r})
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.Strings("roles", roles))
	return s.authenticated(u)
}

func (s *AccountService) authenticated(u *domain.User) (*AuthResult, error) {
	roles := u.RoleNames()
	tok, exp, err := s.tokens.Issue(u.ID, u.UserName, u.Email, roles)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		IsAuthenticated: true,
		UserName:        u.UserName,
		Email:           u.Email,
		Roles:           roles,
		Token:           tok,
		ExpiresOn:       &exp,
	}, nil
}
