// Package config loads service settings from the environment through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Supported values of DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory" // process memory, lost on exit
)

// Config holds the runtime settings of the contact-book server.
type Config struct {
	AppPort     string
	DBDriver    string
	DatabaseDSN string
	RabbitMQURL string // empty disables event publishing
	LogLevel    string
	BcryptCost  int
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "kontak.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
}

// Load reads the configuration from v, applying defaults and environment
// overrides.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		AppPort:     v.GetString("APP_PORT"),
		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		BcryptCost:  v.GetInt("BCRYPT_COST"),
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DatabaseDSN == "" && cfg.DBDriver != DriverMemory {
		return Config{}, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cfg, nil
}
