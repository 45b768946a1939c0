package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// defaults doubles as the list of keys viper binds to APP_* environment variables.
var defaults = map[string]any{
	"app.name":                     "cricket-stats-service",
	"app.version":                  "0.1.0",
	"app.env":                      "dev",
	"app.port":                     8080,
	"app.shutdown_timeout":         10,
	"logger.level":                 "",
	"logger.format":                "",
	"logger.output_target":         "",
	"logger.time_field":            "",
	"logger.time_format":           "",
	"logger.service_name":          "",
	"logger.service_version":       "",
	"logger.env":                   "",
	"logger.with_caller":           false,
	"logger.stacktrace":            false,
	"logger.stacktrace_min_level":  "",
	"storage.driver":               DriverSQLite,
	"sqlite.path":                  "cricket.db",
	"sqlite.busy_timeout_ms":       5000,
	"postgres.host":                "localhost",
	"postgres.port":                5432,
	"postgres.user":                "",
	"postgres.password":            "",
	"postgres.dbname":              "",
	"postgres.sslmode":             "disable",
	"postgres.max_conns":           4,
	"postgres.min_conns":           0,
	"postgres.max_conn_lifetime":   300,
	"postgres.max_conn_idle_time":  60,
	"postgres.health_check_period": 30,
}

// Load reads the YAML file at path and applies APP_* environment overrides on top.
// An empty path skips the file, leaving defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks field constraints and the cross-section rules tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	if c.Storage.Driver == DriverPostgres {
		var missing []string
		if c.Postgres.User == "" {
			missing = append(missing, "postgres.user")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "postgres.password")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "postgres.dbname")
		}
		if len(missing) > 0 {
			return errors.New("config validation error: missing " + strings.Join(missing, ", "))
		}
	}
	return nil
}
