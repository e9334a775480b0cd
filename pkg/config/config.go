package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "pharmstore"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "PHARMSTORE_APP_ENV"
	EnvPort     = "PHARMSTORE_APP_PORT"
	EnvDBDriver = "PHARMSTORE_DB_DRIVER"
	EnvDBDSN    = "PHARMSTORE_DB_DSN"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
	Audit        AuditConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PHARMSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"PHARMSTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PHARMSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PHARMSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"PHARMSTORE_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"PHARMSTORE_DB_DSN"`

	SQLitePath string `envconfig:"PHARMSTORE_SQLITE_PATH" default:"pharmstore.db"`

	MaxOpenConns    int           `envconfig:"PHARMSTORE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PHARMSTORE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PHARMSTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PHARMSTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN derives the sqlite DSN from the configured file path. Postgres
// deployments must supply an explicit DSN.
func (db *DBConfig) ensureDSN() error {
	switch strings.ToLower(db.Driver) {
	case DriverSQLite:
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	case DriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("%s is required when %s=postgres", EnvDBDSN, EnvDBDriver)
		}
		return nil
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"PHARMSTORE_AUTO_MIGRATE" default:"true"`
	SeedDemoData bool `envconfig:"PHARMSTORE_SEED_DEMO_DATA" default:"true"`
}

type AuditConfig struct {
	SystemActor string `envconfig:"PHARMSTORE_AUDIT_SYSTEM_ACTOR" default:"system"`
	ModuleName  string `envconfig:"PHARMSTORE_AUDIT_MODULE" default:"Inventory Management"`
}
