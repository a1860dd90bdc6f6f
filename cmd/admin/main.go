package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-gin-addressbook/internal/core/auth"
	"go-gin-addressbook/internal/core/config"
	"go-gin-addressbook/internal/core/database"
	"go-gin-addressbook/internal/core/logger"
	"go-gin-addressbook/internal/core/server"
	"go-gin-addressbook/internal/service"
	"go-gin-addressbook/internal/transport/http/router"
	"go-gin-addressbook/internal/uow"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	f := cfg.Log.File
	log, cleanup := logger.FromConfig(cfg.Log.Level, cfg.Log.JSON, f.Path, f.MaxSizeMB, f.MaxBackups, f.MaxAgeDays, f.Compress)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log, zapcore.ErrorLevel)

	// DB 连接（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	defer func() { _ = database.Close(db) }()
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	migLog, _ := logger.ToStdLogger(log.Named("migrate"), zapcore.InfoLevel)
	if err := database.Migrate(db, cfg.DB.Driver, cfg.DB.Migrate, migLog); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	jwter := auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.DurationInDays)
	seedAdmin(cfg, db, jwter, log)

	r := router.NewAdminEngine(log, db, jwter, router.Options{
		Mode: ginMode(cfg.App.Env),
	})

	errLog, _ := logger.ToStdLogger(log.Named("http"), zapcore.WarnLevel)
	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second, errLog)

	// 启动前打印可点击地址
	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	if err := server.Shutdown(srv, 10*time.Second); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("admin api stopped gracefully")
}

// seedAdmin makes sure the configured administrator exists. An empty
// password skips it.
func seedAdmin(cfg *config.Config, db *gorm.DB, jwter *auth.JWTer, l *zap.Logger) {
	a := cfg.Seed.Admin
	if a.Password == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := uow.Do(ctx, db, func(u *uow.UnitOfWork) error {
		created, err := service.NewAccountService(uow.NewUserStore(u), jwter, l).EnsureAdmin(ctx, service.RegisterInput{
			UserName:  a.UserName,
			Email:     a.Email,
			Password:  a.Password,
			FirstName: "Admin",
			LastName:  "User",
		})
		if created {
			l.Info("admin account seeded", zap.String("email", a.Email))
		}
		return err
	})
	if err != nil {
		l.Fatal("seed admin", zap.Error(err))
	}
}

func ginMode(env string) string {
	if env == "prod" || env == "production" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	sqlLog, _ := logger.ToStdLogger(l.Named("gorm"), zapcore.InfoLevel)
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username, // 传入用户名
		Password:           cfg.DB.Password, // 传入密码
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		SlowThresholdMs:    cfg.DB.SlowThresholdMs,
		Writer:             sqlLog,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err)) // 失败日志
	}
	return db
}
