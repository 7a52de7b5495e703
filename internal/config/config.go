package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/bagdasarian/openreview-store/internal/logger"
)

const envPrefix = "OPENREVIEW_"

type Config struct {
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Log      logger.Config  `koanf:"log"`
	Review   ReviewConfig   `koanf:"review" validate:"required"`
}

type DatabaseConfig struct {
	Host               string        `koanf:"host" validate:"required"`
	Port               string        `koanf:"port" validate:"required,numeric"`
	User               string        `koanf:"user" validate:"required"`
	Password           string        `koanf:"password"`
	DBName             string        `koanf:"name" validate:"required"`
	SSLMode            string        `koanf:"ssl_mode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns       int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns       int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime    time.Duration `koanf:"conn_max_lifetime"`
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
	MigrateOnStart     bool          `koanf:"migrate_on_start"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

type ReviewConfig struct {
	// StuckAfter is how long a review may stay IN_PROGRESS before it is reported as stuck.
	StuckAfter time.Duration `koanf:"stuck_after" validate:"gt=0"`
}

func defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "openreview",
			Password:           "openreview",
			DBName:             "openreview",
			SSLMode:            "disable",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetime:    time.Hour,
			SlowQueryThreshold: 100 * time.Millisecond,
			MigrateOnStart:     true,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: logger.Config{
			Level:  "info",
			Format: "json",
		},
		Review: ReviewConfig{
			StuckAfter: 30 * time.Minute,
		},
	}
}

// Load reads .env (if present) and OPENREVIEW_* variables on top of the defaults.
// OPENREVIEW_DATABASE_MAX_OPEN_CONNS maps to database.max_open_conns.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// DSN builds a keyword/value connection string with every value quoted.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		quoteDSNValue(c.Host),
		quoteDSNValue(c.Port),
		quoteDSNValue(c.User),
		quoteDSNValue(c.Password),
		quoteDSNValue(c.DBName),
		quoteDSNValue(c.SSLMode),
	)
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}
