package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration.
type Config struct {
	// DBPath is the local SQLite database. Empty means the default data
	// directory.
	DBPath string

	// DictionaryPath is a newline separated word list. Empty means the
	// built-in list.
	DictionaryPath string

	Mongo MongoConfig

	// SyncInterval is how old the last sync may get before a session start
	// triggers a new one. Default: 10h.
	SyncInterval time.Duration

	// TUI selects the bubbletea answer prompt over the plain line reader.
	TUI bool

	// Attempts is the attempt budget per question. Zero means unbounded.
	Attempts int
}

// MongoConfig locates the shared session collection.
type MongoConfig struct {
	URI        string
	Database   string // Default: "psychometrics"
	Collection string // Default: "sessions"
}

// Enabled reports whether a remote database is configured.
func (m MongoConfig) Enabled() bool {
	return m.URI != ""
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Mongo: MongoConfig{
			Database:   "psychometrics",
			Collection: "sessions",
		},
		SyncInterval: 10 * time.Hour,
	}
}

// LoadDotEnv loads path (".env" when empty) into the process environment.
// Variables that are already set keep their values. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("COGTESTS_DB")
	cfg.DictionaryPath = os.Getenv("COGTESTS_DICTIONARY")

	cfg.Mongo.URI = os.Getenv("COGTESTS_MONGO_URI")
	if d := os.Getenv("COGTESTS_MONGO_DB"); d != "" {
		cfg.Mongo.Database = d
	}
	if c := os.Getenv("COGTESTS_MONGO_COLLECTION"); c != "" {
		cfg.Mongo.Collection = c
	}

	if v := os.Getenv("COGTESTS_SYNC_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("COGTESTS_SYNC_INTERVAL: %w", err)
		}
		cfg.SyncInterval = d
	}
	if v := os.Getenv("COGTESTS_TUI"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("COGTESTS_TUI: %w", err)
		}
		cfg.TUI = b
	}
	if v := os.Getenv("COGTESTS_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("COGTESTS_ATTEMPTS: %w", err)
		}
		cfg.Attempts = n
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Attempts < 0 {
		return fmt.Errorf("attempts must not be negative, got %d", c.Attempts)
	}
	if c.SyncInterval < 0 {
		return fmt.Errorf("sync interval must not be negative, got %s", c.SyncInterval)
	}
	if c.Mongo.Enabled() && (c.Mongo.Database == "" || c.Mongo.Collection == "") {
		return fmt.Errorf("mongo database and collection are required when COGTESTS_MONGO_URI is set")
	}
	return nil
}
