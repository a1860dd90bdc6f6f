// Package user is the administrator's view of accounts, served by the admin
// engine.
package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/internal/service"
	"go-gin-addressbook/internal/transport/http/ez"
	"go-gin-addressbook/internal/uow"
)

type UserDto struct {
	ID        string    `json:"id" binding:"required"`
	UserName  string    `json:"userName" binding:"required,max=64"`
	Email     string    `json:"email" binding:"required,email,max=191"`
	FirstName string    `json:"firstName" binding:"omitempty,max=64"`
	LastName  string    `json:"lastName" binding:"omitempty,max=64"`
	Address   string    `json:"address" binding:"omitempty,max=255"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

func toDTO(u *domain.User) UserDto {
	return UserDto{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Address:   u.Address,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
	}
}

type listQ struct {
	Offset int `form:"offset,default=0" binding:"min=0"`
	Limit  int `form:"limit,default=20" binding:"min=0,max=100"`
}

type listOut struct {
	Total int64     `json:"total"`
	Items []UserDto `json:"items"`
}

// Module serves /User on the admin engine.
type Module struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, l *zap.Logger) *Module { return &Module{db: db, log: l} }

func (m *Module) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g, m.db, m.log).Group("/User")
	admin := []string{domain.RoleAdmin}

	ez.RegisterAction(e, ez.Action[listQ, listOut]{
		Method:  http.MethodGet,
		Path:    "/GetAllUsers",
		Binder:  ez.BindQuery,
		Auth:    true,
		Roles:   admin,
		Message: "Users retrieved successfully.",
		Handler: func(c *gin.Context, u *uow.UnitOfWork, in *listQ) (listOut, error) {
			users, total, err := service.NewUserService(u).GetAllUsers(c.Request.Context(), in.Offset, in.Limit)
			if err != nil {
				return listOut{}, err
			}
			out := listOut{Total: total, Items: make([]UserDto, 0, len(users))}
			for i := range users {
				out.Items = append(out.Items, toDTO(&users[i]))
			}
			return out, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, UserDto]{
		Method:  http.MethodGet,
		Path:    "/GetUserById/:id",
		Binder:  ez.BindNone,
		Auth:    true,
		Roles:   admin,
		Message: "User retrieved successfully.",
		Handler: func(c *gin.Context, u *uow.UnitOfWork, _ *struct{}) (UserDto, error) {
			found, err := service.NewUserService(u).GetUserByID(c.Request.Context(), c.Param("id"))
			if err != nil {
				return UserDto{}, err
			}
			return toDTO(found), nil
		},
	})

	ez.RegisterAction(e, ez.Action[UserDto, struct{}]{
		Method:     http.MethodPut,
		Path:       "/UpdateUser/:id",
		Binder:     ez.BindJSON,
		Auth:       true,
		Roles:      admin,
		InvalidMsg: "Invalid user data.",
		NoContent:  true,
		Handler: func(c *gin.Context, u *uow.UnitOfWork, in *UserDto) (struct{}, error) {
			id := c.Param("id")
			if in.ID != id {
				return struct{}{}, ez.BadRequest("Invalid user data.")
			}
			_, err := service.NewUserService(u).UpdateUser(c.Request.Context(), id, service.UserUpdate{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				UserName:  in.UserName,
				Email:     in.Email,
				Address:   in.Address,
			})
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return struct{}{}, ez.Internal("An error occurred while saving the user.", err)
			}
			return struct{}{}, err
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method:    http.MethodDelete,
		Path:      "/DeleteUser/:id",
		Binder:    ez.BindNone,
		Auth:      true,
		Roles:     admin,
		NoContent: true,
		Handler: func(c *gin.Context, u *uow.UnitOfWork, _ *struct{}) (struct{}, error) {
			err := service.NewUserService(u).DeleteUser(c.Request.Context(), c.Param("id"))
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return struct{}{}, ez.Internal("An error occurred while deleting the user.", err)
			}
			return struct{}{}, err
		},
	})
}
