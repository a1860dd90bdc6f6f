package database

import (
	"embed"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"go-gin-addressbook/internal/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	MigrateAuto  = "auto"
	MigrateGoose = "goose"
	MigrateNone  = "none"
)

// Models lists every table owned by the service, parents first.
func Models() []any {
	return []any{
		&domain.Department{},
		&domain.Job{},
		&domain.Employee{},
		&domain.User{},
		&domain.UserRole{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Migrate brings the schema up to date. The goose mode only ships postgres
// SQL; use auto for the other drivers.
func Migrate(db *gorm.DB, driver, mode string, l *log.Logger) error {
	switch mode {
	case "", MigrateAuto:
		return AutoMigrate(db)
	case MigrateNone:
		return nil
	case MigrateGoose:
		if driver != "postgres" {
			return fmt.Errorf("goose migrations require postgres, got %q", driver)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		goose.SetBaseFS(migrations)
		if l != nil {
			goose.SetLogger(l)
		}
		if err := goose.SetDialect("postgres"); err != nil {
			return err
		}
		return goose.Up(sqlDB, "migrations")
	default:
		return fmt.Errorf("unknown migrate mode %q", mode)
	}
}
