// Package config loads server settings from an optional YAML file with
// CASHFLOW_* environment overrides, e.g. CASHFLOW_SERVER_PORT=9000.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const envPrefix = "CASHFLOW"

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

type ForecastConfig struct {
	HorizonMonths            int    `mapstructure:"horizon_months"`
	OpportunityHorizonMonths int    `mapstructure:"opportunity_horizon_months"`
	ExcludeToday             bool   `mapstructure:"exclude_today"`
	Reserve                  string `mapstructure:"reserve"`
	Timezone                 string `mapstructure:"timezone"`

	// CycleDays is the settlement cycle length used to project when an open
	// settlement closes. CycleDaysByAccount overrides it per marketplace
	// account and can only be set from the config file.
	CycleDays          int            `mapstructure:"cycle_days"`
	CycleDaysByAccount map[string]int `mapstructure:"cycle_days_by_account"`
}

type RefreshConfig struct {
	// Schedule is a cron spec or descriptor such as "@every 5m". Empty disables refresh.
	Schedule string `mapstructure:"schedule"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
	Log      LogConfig      `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "./data/cashflow.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("forecast.horizon_months", 3)
	v.SetDefault("forecast.opportunity_horizon_months", 3)
	v.SetDefault("forecast.exclude_today", false)
	v.SetDefault("forecast.reserve", "0")
	v.SetDefault("forecast.timezone", "Local")
	v.SetDefault("forecast.cycle_days", 14)
	v.SetDefault("forecast.cycle_days_by_account", map[string]int{})
	v.SetDefault("refresh.schedule", "@every 5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration from path. If path is empty it looks for
// cashflow.yaml in the working directory and runs on defaults when none exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("cashflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The logging package's own variables keep working.
	_ = v.BindEnv("log.level", envPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log.format", envPrefix+"_LOG_FORMAT", "LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
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

// Validate checks ranges and cross-field requirements.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("config: database.path is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("config: database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}

	f := c.Forecast
	if f.HorizonMonths < 1 || f.HorizonMonths > 12 {
		return fmt.Errorf("config: forecast.horizon_months must be 1-12, got %d", f.HorizonMonths)
	}
	if f.OpportunityHorizonMonths < 1 || f.OpportunityHorizonMonths > 12 {
		return fmt.Errorf("config: forecast.opportunity_horizon_months must be 1-12, got %d", f.OpportunityHorizonMonths)
	}
	if f.CycleDays < 1 {
		return fmt.Errorf("config: forecast.cycle_days must be positive, got %d", f.CycleDays)
	}
	for account, days := range f.CycleDaysByAccount {
		if days < 1 {
			return fmt.Errorf("config: cycle days for account %q must be positive, got %d", account, days)
		}
	}
	if _, err := c.ReserveAmount(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("config: invalid server.port %d", c.Server.Port)
	}
	return nil
}

// ReserveAmount parses the configured minimum-balance line.
func (c *Config) ReserveAmount() (decimal.Decimal, error) {
	if c.Forecast.Reserve == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(c.Forecast.Reserve)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: invalid forecast.reserve: %w", err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("config: forecast.reserve must not be negative, got %s", d)
	}
	return d, nil
}

// Location resolves the time zone that decides which day is today.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Forecast.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid forecast.timezone: %w", err)
	}
	return loc, nil
}
