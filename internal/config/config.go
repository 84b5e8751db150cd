// Package config loads the storefront settings from defaults, an optional
// config file and environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "OMAR_CONFIG_FILE"

// Cart storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds every setting of the storefront service.
type Config struct {
	AppPort string

	CartBackend    string
	CartStorageKey string
	CartTTL        time.Duration

	DatabaseDriver string
	DatabaseDSN    string
	RedisAddr      string
	RabbitMQURL    string
	RabbitMQQueue  string

	OrderEndpoint string
	OrderTimeout  time.Duration

	JWTSecret     string
	StaffUsername string
	StaffEmail    string
	StaffPassword string
}

// New returns a viper instance with every default registered and environment
// variables bound.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("CART_BACKEND", BackendSQLite)
	v.SetDefault("CART_STORAGE_KEY", "omar-restaurant-cart")
	v.SetDefault("CART_TTL", time.Duration(0))
	v.SetDefault("DATABASE_DRIVER", BackendSQLite)
	v.SetDefault("DATABASE_DSN", "omar.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("RABBITMQ_URL", "") // empty disables order events
	v.SetDefault("RABBITMQ_QUEUE", "order_queue")
	v.SetDefault("ORDER_ENDPOINT", "https://omar-restaurant-demo.onrender.com/api/order")
	v.SetDefault("ORDER_TIMEOUT", time.Duration(0))
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("STAFF_USERNAME", "keuken")
	v.SetDefault("STAFF_EMAIL", "keuken@omar.example")
	v.SetDefault("STAFF_PASSWORD", "")
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file named by --config or OMAR_CONFIG_FILE
// on top of the defaults. Environment variables still win over file values.
func Load(args []string) (Config, error) {
	v := New()

	path, err := configFilepath(args)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:        v.GetString("APP_PORT"),
		CartBackend:    v.GetString("CART_BACKEND"),
		CartStorageKey: v.GetString("CART_STORAGE_KEY"),
		CartTTL:        v.GetDuration("CART_TTL"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:  v.GetString("RABBITMQ_QUEUE"),
		OrderEndpoint:  v.GetString("ORDER_ENDPOINT"),
		OrderTimeout:   v.GetDuration("ORDER_TIMEOUT"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		StaffUsername:  v.GetString("STAFF_USERNAME"),
		StaffEmail:     v.GetString("STAFF_EMAIL"),
		StaffPassword:  v.GetString("STAFF_PASSWORD"),
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings that have a closed set of values.
func (c Config) Validate() error {
	switch c.CartBackend {
	case BackendMemory, BackendSQLite, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("unknown CART_BACKEND %q", c.CartBackend)
	}
	switch c.DatabaseDriver {
	case BackendSQLite, BackendPostgres:
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if (c.CartBackend == BackendSQLite || c.CartBackend == BackendPostgres) && c.CartBackend != c.DatabaseDriver {
		return fmt.Errorf("CART_BACKEND %q requires DATABASE_DRIVER %q", c.CartBackend, c.CartBackend)
	}
	if c.OrderEndpoint == "" {
		return fmt.Errorf("ORDER_ENDPOINT is required")
	}
	return nil
}

// configFilepath returns the config file named by OMAR_CONFIG_FILE, falling
// back to the --config flag. Unknown flags and --help are reported as errors.
func configFilepath(args []string) (string, error) {
	cmdLine := pflag.NewFlagSet("omareats", pflag.ContinueOnError)
	cmdLine.SetOutput(os.Stderr)
	arg := cmdLine.String("config", "", "config file")
	if err := cmdLine.Parse(args); err != nil {
		return "", fmt.Errorf("failed to parse flags: %w", err)
	}
	if env := os.Getenv(configFileEnvName); env != "" {
		return env, nil
	}
	return *arg, nil
}
