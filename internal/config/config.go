package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageFile     = "file"
)

// Config holds all application configuration
type Config struct {
	BotToken       string
	BotPassword    string
	StorageDriver  string `validate:"oneof=postgres sqlite file"`
	Database       DatabaseConfig
	SQLitePath     string `validate:"required_if=StorageDriver sqlite"`
	StateDir       string `validate:"required_if=StorageDriver file"`
	StateSlot      string `validate:"required"`
	MigrationsPath string `validate:"required"`
	LogLevel       string `validate:"oneof=debug info warn error"`
	LogFile        string
	Import         ImportConfig
	Gesture        GestureConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// ImportConfig holds delimited text import settings
type ImportConfig struct {
	Delimiter string `validate:"required"`
}

// GestureConfig holds the swipe commit predicate tunables
type GestureConfig struct {
	CommitFraction float64       `validate:"gt=0,lt=1"`
	MinVelocity    float64       `validate:"gte=0"`
	MaxDuration    time.Duration `validate:"gt=0"`
}

var validate = validator.New()

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		BotPassword:   os.Getenv("BOT_PASSWORD"),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageFile),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordlearner"),
			User:     getEnv("DB_USER", "wordlearner"),
			Password: os.Getenv("DB_PASSWORD"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SQLitePath:     getEnv("SQLITE_PATH", "./wordlearner.db"),
		StateDir:       getEnv("STATE_DIR", "./data"),
		StateSlot:      getEnv("STATE_SLOT", "wordlearner-data"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", "wordlearner.log"),
		Import: ImportConfig{
			Delimiter: getEnv("IMPORT_DELIMITER", ","),
		},
	}

	var err error
	if cfg.Gesture.CommitFraction, err = getEnvFloat("GESTURE_COMMIT_FRACTION", 0.4); err != nil {
		return nil, err
	}
	if cfg.Gesture.MinVelocity, err = getEnvFloat("GESTURE_MIN_VELOCITY", 0.5); err != nil {
		return nil, err
	}
	if cfg.Gesture.MaxDuration, err = getEnvDuration("GESTURE_MAX_DURATION", 2*time.Second); err != nil {
		return nil, err
	}

	if cfg.StorageDriver == StoragePostgres && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// RequireBot validates the settings only the Telegram bot needs
func (c *Config) RequireBot() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.BotPassword == "" {
		return fmt.Errorf("BOT_PASSWORD is required")
	}
	if c.StorageDriver == StorageFile {
		return fmt.Errorf("STORAGE_DRIVER must be postgres or sqlite for the bot")
	}
	return nil
}

// SQLDriver returns the database/sql driver name for the storage, or "" for file storage
func (c *Config) SQLDriver() string {
	switch c.StorageDriver {
	case StoragePostgres:
		return "postgres"
	case StorageSQLite:
		return "sqlite3"
	default:
		return ""
	}
}

// DSN returns the connection string for the configured SQL storage
func (c *Config) DSN() string {
	if c.StorageDriver == StorageSQLite {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.SQLitePath)
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
