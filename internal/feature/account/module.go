package account

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-addressbook/internal/core/auth"
	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/internal/service"
	"go-gin-addressbook/internal/transport/http/ez"
	"go-gin-addressbook/internal/uow"
)

type LoginDto struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterDto struct {
	FirstName       string `json:"firstName" binding:"required,max=64"`
	LastName        string `json:"lastName" binding:"required,max=64"`
	UserName        string `json:"userName" binding:"required,max=64"`
	Email           string `json:"email" binding:"required,email,max=191"`
	Address         string `json:"address" binding:"omitempty,max=255"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

type registerOut struct {
	Token     string    `json:"token"`
	ExpiresOn time.Time `json:"expiresOn"`
}

type failure struct {
	Message         string `json:"message"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Module serves /Account. It is mounted without authentication.
type Module struct {
	db    *gorm.DB
	jwter *auth.JWTer
	log   *zap.Logger
}

func New(db *gorm.DB, jwter *auth.JWTer, l *zap.Logger) *Module {
	return &Module{db: db, jwter: jwter, log: l}
}

func (m *Module) Priority() int { return 10 }
func (m *Module) Public() bool  { return true }

func (m *Module) accounts(u *uow.UnitOfWork) *service.AccountService {
	return service.NewAccountService(uow.NewUserStore(u), m.jwter, m.log)
}

func (m *Module) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, m.db, m.log).Group("/Account")

	ez.RegisterAction(e, ez.Action[LoginDto, *service.AuthResult]{
		Method:  http.MethodPost,
		Path:    "/Login",
		Binder:  ez.BindJSON,
		Message: "Login successfully.",
		Handler: func(c *gin.Context, u *uow.UnitOfWork, in *LoginDto) (*service.AuthResult, error) {
			res, err := m.accounts(u).Login(c.Request.Context(), strings.TrimSpace(in.Email), in.Password)
			if errors.Is(err, domain.ErrNotAuthenticated) {
				return nil, ez.WithBody(http.StatusBadRequest, failure{Message: err.Error()})
			}
			return res, err
		},
	})

	ez.RegisterAction(e, ez.Action[RegisterDto, registerOut]{
		Method: http.MethodPost,
		Path:   "/Register",
		Binder: ez.BindJSON,
		Raw:    true,
		Handler: func(c *gin.Context, u *uow.UnitOfWork, in *RegisterDto) (registerOut, error) {
			res, err := m.accounts(u).Register(c.Request.Context(), service.RegisterInput{
				FirstName: strings.TrimSpace(in.FirstName),
				LastName:  strings.TrimSpace(in.LastName),
				UserName:  strings.TrimSpace(in.UserName),
				Email:     strings.TrimSpace(in.Email),
				Address:   strings.TrimSpace(in.Address),
				Password:  in.Password,
			})
			switch {
			case errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrDuplicateUserName):
				return registerOut{}, ez.WithBody(http.StatusBadRequest, failure{Message: err.Error()})
			case errors.Is(err, domain.ErrConstraintViolation):
				// lost a race with a concurrent registration
				return registerOut{}, ez.WithBody(http.StatusBadRequest, failure{Message: "Email or username is already registered"})
			case err != nil:
				return registerOut{}, err
			}
			return registerOut{Token: res.Token, ExpiresOn: *res.ExpiresOn}, nil
		},
	})
}
