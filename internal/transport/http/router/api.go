package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"go-gin-addressbook/internal/core/auth"
	"go-gin-addressbook/internal/core/server"
	"go-gin-addressbook/internal/feature/account"
	"go-gin-addressbook/internal/feature/dashboard"
	"go-gin-addressbook/internal/feature/department"
	"go-gin-addressbook/internal/feature/employee"
	"go-gin-addressbook/internal/feature/job"
	"go-gin-addressbook/internal/transport/http/ez"
	mdw "go-gin-addressbook/internal/transport/http/middleware"
)

// Options tunes the shared middleware chain. Zero values fall back to the
// defaults below.
type Options struct {
	Mode           string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int64
	MaxBodyBytes   int64
}

func (o Options) withDefaults() Options {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 20 * time.Second
	}
	if o.RateLimitRPS <= 0 {
		o.RateLimitRPS = 20
	}
	if o.RateLimitBurst <= 0 {
		o.RateLimitBurst = 40
	}
	if o.MaxInFlight <= 0 {
		o.MaxInFlight = 256
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = mdw.DefaultMaxBody
	}
	return o
}

func baseEngine(l *zap.Logger, db *gorm.DB, o Options) *gin.Engine {
	o = o.withDefaults()
	ez.RegisterValidators()

	r := server.NewRouter(l, server.Options{Mode: o.Mode})
	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(rate.Limit(o.RateLimitRPS), o.RateLimitBurst, 10*time.Minute),
		mdw.ConcurrencyLimit(o.MaxInFlight),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.RequestTimeout),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			l.Warn("health: db ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// NewAPIEngine serves the address book under /api. Everything except
// /api/Account requires a bearer token.
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, o Options) *gin.Engine {
	r := baseEngine(l, db, o)

	reg := NewRegistry()
	reg.Register(
		account.New(db, jwter, l),
		employee.New(db, l),
		department.New(db, l),
		job.New(db, l),
		dashboard.New(db, l),
	)

	api := r.Group("/api")
	secured := api.Group("")
	secured.Use(mdw.AuthJWT(jwter, ""))
	reg.MountAllAPI(api, secured)

	return r
}
