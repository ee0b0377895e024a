package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ops-dashboard/internal/businesshours"
)

// Database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration options for the ops dashboard
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	BusinessHours BusinessHoursConfig `yaml:"business_hours"`
	Server        ServerConfig        `yaml:"server"`
	Validation    ValidationConfig    `yaml:"validation"`
	Display       DisplayConfig       `yaml:"display"`
	Application   ApplicationConfig   `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver         string        `yaml:"driver" env:"OPS_DB_DRIVER"`
	Dir            string        `yaml:"dir" env:"OPS_DB_DIR"`
	Filename       string        `yaml:"filename" env:"OPS_DB_FILENAME"`
	PostgresDSN    string        `yaml:"postgres_dsn" env:"OPS_DB_POSTGRES_DSN"`
	MaxConns       int32         `yaml:"max_conns" env:"OPS_DB_MAX_CONNS"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"OPS_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"OPS_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"OPS_DB_DIR_PERMISSIONS"`
}

// BusinessHoursConfig describes the working calendar used for SLA figures
type BusinessHoursConfig struct {
	Timezone    string `yaml:"timezone" env:"OPS_BH_TIMEZONE"`
	DayStart    string `yaml:"day_start" env:"OPS_BH_DAY_START"`
	DayEnd      string `yaml:"day_end" env:"OPS_BH_DAY_END"`
	Weekend     string `yaml:"weekend" env:"OPS_BH_WEEKEND"`
	MaxSpanDays int    `yaml:"max_span_days" env:"OPS_BH_MAX_SPAN_DAYS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"OPS_SERVER_ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"OPS_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"OPS_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"OPS_SERVER_SHUTDOWN_TIMEOUT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	ServiceMaxLength     int `yaml:"service_max_length" env:"OPS_VALIDATION_SERVICE_MAX"`
	OperatorMaxLength    int `yaml:"operator_max_length" env:"OPS_VALIDATION_OPERATOR_MAX"`
	CustomerMaxLength    int `yaml:"customer_max_length" env:"OPS_VALIDATION_CUSTOMER_MAX"`
	DescriptionMaxLength int `yaml:"description_max_length" env:"OPS_VALIDATION_DESCRIPTION_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	Placeholder         string `yaml:"placeholder" env:"OPS_DISPLAY_PLACEHOLDER"`
	TimeFormat          string `yaml:"time_format" env:"OPS_DISPLAY_TIME_FORMAT"`
	ReportDefaultFormat string `yaml:"report_default_format" env:"OPS_REPORT_DEFAULT_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout   time.Duration `yaml:"timeout" env:"OPS_APP_TIMEOUT"`
	Verbose   bool          `yaml:"verbose" env:"OPS_APP_VERBOSE"`
	LogFormat string        `yaml:"log_format" env:"OPS_LOG_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Dir:            filepath.Join(homeDir, ".ops-dashboard"),
			Filename:       "ops.db",
			MaxConns:       4,
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		BusinessHours: BusinessHoursConfig{
			Timezone:    "Local",
			DayStart:    businesshours.FormatClock(businesshours.DefaultDayStart),
			DayEnd:      businesshours.FormatClock(businesshours.DefaultDayEnd),
			Weekend:     "sat,sun",
			MaxSpanDays: businesshours.DefaultMaxSpanDays,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Validation: ValidationConfig{
			ServiceMaxLength:     100,
			OperatorMaxLength:    100,
			CustomerMaxLength:    200,
			DescriptionMaxLength: 2000,
		},
		Display: DisplayConfig{
			Placeholder:         "-",
			TimeFormat:          "2006-01-02 15:04",
			ReportDefaultFormat: "table",
		},
		Application: ApplicationConfig{
			Timeout:   60 * time.Second,
			LogFormat: "console",
		},
	}
}

// GetDatabasePath returns the full path to the SQLite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromFile overlays the YAML file at path onto the configuration.
// Keys missing from the file keep their current values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LoadFromEnvironment loads configuration from OPS_* environment variables.
// Malformed values are ignored and the current value kept.
func (c *Config) LoadFromEnvironment() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			*dst = ParseDurationWithFallback(v, *dst)
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			*dst = ParseIntWithFallback(v, *dst)
		}
	}

	// Database configuration
	setString("OPS_DB_DRIVER", &c.Database.Driver)
	setString("OPS_DB_DIR", &c.Database.Dir)
	setString("OPS_DB_FILENAME", &c.Database.Filename)
	setString("OPS_DB_POSTGRES_DSN", &c.Database.PostgresDSN)
	if v := os.Getenv("OPS_DB_MAX_CONNS"); v != "" {
		c.Database.MaxConns = int32(ParseIntWithFallback(v, int(c.Database.MaxConns)))
	}
	setDuration("OPS_DB_QUERY_TIMEOUT", &c.Database.QueryTimeout)
	setDuration("OPS_DB_WRITE_TIMEOUT", &c.Database.WriteTimeout)
	if v := os.Getenv("OPS_DB_DIR_PERMISSIONS"); v != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(v, 8, c.Database.DirPermissions)
	}

	// Business hours
	setString("OPS_BH_TIMEZONE", &c.BusinessHours.Timezone)
	setString("OPS_BH_DAY_START", &c.BusinessHours.DayStart)
	setString("OPS_BH_DAY_END", &c.BusinessHours.DayEnd)
	if v, ok := os.LookupEnv("OPS_BH_WEEKEND"); ok {
		// an empty value means every day is a working day
		c.BusinessHours.Weekend = v
	}
	setInt("OPS_BH_MAX_SPAN_DAYS", &c.BusinessHours.MaxSpanDays)

	// Server
	setString("OPS_SERVER_ADDR", &c.Server.Addr)
	setDuration("OPS_SERVER_READ_TIMEOUT", &c.Server.ReadTimeout)
	setDuration("OPS_SERVER_WRITE_TIMEOUT", &c.Server.WriteTimeout)
	setDuration("OPS_SERVER_SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout)

	// Validation
	setInt("OPS_VALIDATION_SERVICE_MAX", &c.Validation.ServiceMaxLength)
	setInt("OPS_VALIDATION_OPERATOR_MAX", &c.Validation.OperatorMaxLength)
	setInt("OPS_VALIDATION_CUSTOMER_MAX", &c.Validation.CustomerMaxLength)
	setInt("OPS_VALIDATION_DESCRIPTION_MAX", &c.Validation.DescriptionMaxLength)

	// Display
	setString("OPS_DISPLAY_PLACEHOLDER", &c.Display.Placeholder)
	setString("OPS_DISPLAY_TIME_FORMAT", &c.Display.TimeFormat)
	setString("OPS_REPORT_DEFAULT_FORMAT", &c.Display.ReportDefaultFormat)

	// Application
	setDuration("OPS_APP_TIMEOUT", &c.Application.Timeout)
	if v := os.Getenv("OPS_APP_VERBOSE"); v != "" {
		c.Application.Verbose = ParseBoolWithFallback(v, c.Application.Verbose)
	}
	setString("OPS_LOG_FORMAT", &c.Application.LogFormat)

	return nil
}

// Validate validates the configuration and returns the first problem found
func (c *Config) Validate() error {
	// Database configuration
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	case DriverPostgres:
		if c.Database.PostgresDSN == "" {
			return &ConfigError{Field: "database.postgres_dsn", Message: "postgres DSN is required for the postgres driver"}
		}
	default:
		return &ConfigError{Field: "database.driver", Message: fmt.Sprintf("unknown driver %q, expected sqlite or postgres", c.Database.Driver)}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Business hours
	if _, err := c.Calendar(); err != nil {
		return &ConfigError{Field: "business_hours", Message: err.Error()}
	}

	// Server
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server", Message: "server timeouts must be positive"}
	}

	// Validation
	if c.Validation.ServiceMaxLength < 1 {
		return &ConfigError{Field: "validation.service_max_length", Message: "service maximum length must be at least 1"}
	}
	if c.Validation.OperatorMaxLength < 1 || c.Validation.CustomerMaxLength < 1 || c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation", Message: "maximum lengths must be at least 1"}
	}

	// Display
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	switch c.Display.ReportDefaultFormat {
	case "table", "csv", "json":
	default:
		return &ConfigError{Field: "display.report_default_format", Message: "report format must be table, csv or json"}
	}

	// Application
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if c.Application.LogFormat != "console" && c.Application.LogFormat != "json" {
		return &ConfigError{Field: "application.log_format", Message: "log format must be console or json"}
	}

	return nil
}

// Location resolves the business time zone. "" and "Local" mean the
// process zone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.BusinessHours.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	return loc, nil
}

// Calendar builds the working calendar described by the business hours settings
func (c *Config) Calendar() (*businesshours.Calendar, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	start, err := businesshours.ParseClock(c.BusinessHours.DayStart)
	if err != nil {
		return nil, fmt.Errorf("day start: %w", err)
	}
	end, err := businesshours.ParseClock(c.BusinessHours.DayEnd)
	if err != nil {
		return nil, fmt.Errorf("day end: %w", err)
	}
	weekend, err := businesshours.ParseWeekdays(c.BusinessHours.Weekend)
	if err != nil {
		return nil, fmt.Errorf("weekend: %w", err)
	}

	return businesshours.NewCalendar(
		businesshours.WithLocation(loc),
		businesshours.WithWindow(start, end),
		businesshours.WithWeekend(weekend...),
		businesshours.WithMaxSpanDays(c.BusinessHours.MaxSpanDays),
	)
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
