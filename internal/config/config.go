package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Addr     string
	Timezone string
	Location *time.Location

	LogLevel  string
	LogFormat string

	StoreDriver string
	DB          DBConfig
	SQLitePath  string

	Redis           RedisConfig
	AvailabilityTTL time.Duration

	RabbitMQURL            string
	ReservationEventsQueue string

	JWTSecret string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig leaves Host empty when the availability cache is disabled.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// LoadDotEnv reads path into the process environment if it exists. Variables
// already set win over the file.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// Load reads the configuration from the environment. Every missing or invalid
// variable is reported in the returned error, not only the first.
func Load() (Config, error) {
	var problems []string

	cfg := Config{
		Addr:                   getenv("APP_ADDR", ":8080"),
		Timezone:               getenv("APP_TIMEZONE", "America/La_Paz"),
		LogLevel:               strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat:              strings.ToLower(getenv("LOG_FORMAT", "text")),
		StoreDriver:            strings.ToLower(getenv("STORE_DRIVER", DriverPostgres)),
		SQLitePath:             getenv("SQLITE_PATH", "condo.db"),
		RabbitMQURL:            os.Getenv("RABBITMQ_URL"),
		ReservationEventsQueue: getenv("RESERVATION_EVENTS_QUEUE", "reservation.events"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		DB: DBConfig{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME", "condo_reservations"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getenv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		problems = append(problems, fmt.Sprintf("APP_TIMEZONE: unknown zone %q", cfg.Timezone))
	}
	cfg.Location = loc

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL: %q is not one of debug, info, warn, error", cfg.LogLevel))
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("LOG_FORMAT: %q is not one of text, json", cfg.LogFormat))
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH: required when STORE_DRIVER=sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER: %q is not one of postgres, sqlite", cfg.StoreDriver))
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil || db < 0 {
			problems = append(problems, fmt.Sprintf("REDIS_DB: %q is not a database number", v))
		}
		cfg.Redis.DB = db
	}

	cfg.AvailabilityTTL = 30 * time.Second
	if v := os.Getenv("AVAILABILITY_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			problems = append(problems, fmt.Sprintf("AVAILABILITY_CACHE_TTL: %q is not a positive duration", v))
		} else {
			cfg.AvailabilityTTL = ttl
		}
	}

	if cfg.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET: required")
	}

	if len(problems) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
