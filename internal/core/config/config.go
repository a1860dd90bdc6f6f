package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int
	RateLimitRPS      float64
	RateLimitBurst    int
	MaxInFlight       int64
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type LogFile struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret         string
	Issuer         string
	DurationInDays int
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	Migrate            string
	LogLevel           string
	SlowThresholdMs    int
}

type Account struct {
	Email    string
	UserName string
	Password string
}

type Seed struct {
	Admin Account
}

type Config struct {
	App  App
	Log  Log
	JWT  JWT
	DB   DB
	Seed Seed
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "addressbook")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 15)
	v.SetDefault("app.http.writeTimeoutSec", 30)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.requestTimeoutSec", 20)
	v.SetDefault("app.http.rateLimitRPS", 20)
	v.SetDefault("app.http.rateLimitBurst", 40)
	v.SetDefault("app.http.maxInFlight", 256)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("log.level", "info")
	// keys need to be known for APP_* overrides to reach Unmarshal
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "addressbook")
	v.SetDefault("jwt.durationInDays", 1)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "addressbook.db?_foreign_keys=1")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.migrate", "auto")
	v.SetDefault("db.logLevel", "warn")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("seed.admin.email", "")
	v.SetDefault("seed.admin.userName", "")
	v.SetDefault("seed.admin.password", "")
}

// Read loads path (or $CONFIG_PATH, or the local default) with APP_ env
// overrides, e.g. APP_JWT_SECRET for jwt.secret.
func Read(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return c
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret is required")
	}
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("config: unsupported db.driver %q", c.DB.Driver)
	}
	return nil
}
