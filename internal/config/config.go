package config

import (
	"github.com/maxviazov/cricket-stats-service/internal/logger"
)

// Storage drivers understood by cmd/server.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Storage  StorageConfig       `mapstructure:"storage"`
	SQLite   SQLiteConfig        `mapstructure:"sqlite"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env" validate:"oneof=dev staging prod"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
	// ShutdownTimeout is in seconds.
	ShutdownTimeout int `mapstructure:"shutdown_timeout" validate:"min=0"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=sqlite postgres"`
}

// SQLiteConfig locates the single store file. Path is relative to the working directory unless absolute.
type SQLiteConfig struct {
	Path          string `mapstructure:"path" validate:"required"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms" validate:"min=0"`
}

// PostgresConfig is only read when storage.driver is postgres.
// Durations are in seconds.
type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}
