package storeinfra

import (
	"time"
)

// Supported driver names. They match the names the drivers register with database/sql.
const (
	// DriverSQLite is the pure Go modernc.org/sqlite driver.
	DriverSQLite = "sqlite"
	// DriverSQLite3 is the cgo github.com/mattn/go-sqlite3 driver.
	DriverSQLite3 = "sqlite3"
	// DriverPostgres is the github.com/lib/pq driver.
	DriverPostgres = "postgres"
)

// Config holds the settings needed to open the backing database.
type Config struct {
	// Driver selects the database/sql driver. One of DriverSQLite,
	// DriverSQLite3 or DriverPostgres.
	Driver string `mapstructure:"driver"`

	// DSN is handed to the driver untouched.
	DSN string `mapstructure:"dsn"`

	// MaxOpenConns caps the pool. SQLite handles should keep this at 1:
	// an in-memory database only lives as long as its single connection.
	// Zero leaves the database/sql default.
	MaxOpenConns int `mapstructure:"max_open_conns"`

	// PingTimeout bounds the connectivity check done by Open.
	// Zero skips the check.
	PingTimeout time.Duration `mapstructure:"ping_timeout"`
}

// DefaultConfig returns a Config backed by a local SQLite file.
func DefaultConfig() Config {
	return Config{
		Driver:       DriverSQLite,
		DSN:          "file:notes.db?_pragma=busy_timeout(5000)",
		MaxOpenConns: 1,
		PingTimeout:  2 * time.Second,
	}
}

// MemoryConfig returns a Config for a private in-memory SQLite database.
func MemoryConfig() Config {
	cfg := DefaultConfig()
	cfg.DSN = ":memory:"
	return cfg
}

// IsSQLite reports whether the configured driver speaks the SQLite dialect.
func (c Config) IsSQLite() bool {
	return c.Driver == DriverSQLite || c.Driver == DriverSQLite3
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverSQLite3, DriverPostgres:
	case "":
		return &ConfigError{Field: "Driver", Message: "must be set"}
	default:
		return &ConfigError{Field: "Driver", Message: "unsupported driver " + c.Driver}
	}

	if c.DSN == "" {
		return &ConfigError{Field: "DSN", Message: "must be set"}
	}

	if c.MaxOpenConns < 0 {
		return &ConfigError{Field: "MaxOpenConns", Message: "must be non-negative"}
	}

	if c.PingTimeout < 0 {
		return &ConfigError{Field: "PingTimeout", Message: "must be non-negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
