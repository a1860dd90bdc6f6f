package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-addressbook/internal/core/auth"
	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/internal/feature/user"
	mdw "go-gin-addressbook/internal/transport/http/middleware"
)

// NewAdminEngine serves account administration under /admin/v1, Admin role
// only.
func NewAdminEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, o Options) *gin.Engine {
	r := baseEngine(l, db, o)

	reg := NewRegistry()
	reg.Register(user.New(db, l))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))
	reg.MountAllAdmin(admin)

	return r
}
