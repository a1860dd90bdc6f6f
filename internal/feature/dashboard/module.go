package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/internal/repo"
	"go-gin-addressbook/internal/service"
	"go-gin-addressbook/internal/transport/http/ez"
	"go-gin-addressbook/internal/uow"
)

// Module serves /Dashboard. Counts read straight from the pool.
type Module struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, l *zap.Logger) *Module { return &Module{db: db, log: l} }

func (m *Module) MountAPI(g *gin.RouterGroup) {
	svc := service.NewDashboardService(
		repo.NewCounter[domain.User](m.db),
		repo.NewCounter[domain.Employee](m.db),
		repo.NewCounter[domain.Department](m.db),
		repo.NewCounter[domain.Job](m.db),
	)
	e := ez.New(g, m.db, m.log).Group("/Dashboard")

	ez.RegisterAction(e, ez.Action[struct{}, *service.DashboardData]{
		Method:         http.MethodGet,
		Path:           "/GetDashboardData",
		Binder:         ez.BindNone,
		Raw:            true,
		SkipUnitOfWork: true,
		Handler: func(c *gin.Context, _ *uow.UnitOfWork, _ *struct{}) (*service.DashboardData, error) {
			return svc.GetDashboardData(c.Request.Context())
		},
	})
}
