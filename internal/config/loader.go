package config

import (
	"os"
	"strconv"
	"time"
)

// ConfigFileEnv names the environment variable holding the YAML config path
const ConfigFileEnv = "OPS_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	file   string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithFile sets the YAML file to read. It takes precedence over OPS_CONFIG.
func (l *Loader) WithFile(path string) *Loader {
	l.file = path
	return l
}

// Load loads configuration using the cascading strategy:
// defaults, then the YAML file, then environment variables.
// Command line flags are applied by LoadWithOverrides.
func (l *Loader) Load() (*Config, error) {
	file := l.file
	if file == "" {
		file = os.Getenv(ConfigFileEnv)
	}
	if file != "" {
		if err := l.config.LoadFromFile(file); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if overrides != nil && overrides.ConfigFile != nil {
		l.file = *overrides.ConfigFile
	}

	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields were not set.
type ConfigOverrides struct {
	ConfigFile *string

	// Database overrides
	DBDriver       *string
	DBDir          *string
	DBFilename     *string
	DBPostgresDSN  *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	// Business hours overrides
	Timezone *string
	DayStart *string
	DayEnd   *string
	Weekend  *string

	// Server overrides
	ServerAddr *string

	// Display overrides
	Placeholder *string
	TimeFormat  *string

	// Application overrides
	Timeout   *time.Duration
	Verbose   *bool
	LogFormat *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, o *ConfigOverrides) {
	setString := func(src *string, dst *string) {
		if src != nil {
			*dst = *src
		}
	}
	setDuration := func(src *time.Duration, dst *time.Duration) {
		if src != nil {
			*dst = *src
		}
	}

	setString(o.DBDriver, &config.Database.Driver)
	setString(o.DBDir, &config.Database.Dir)
	setString(o.DBFilename, &config.Database.Filename)
	setString(o.DBPostgresDSN, &config.Database.PostgresDSN)
	setDuration(o.DBQueryTimeout, &config.Database.QueryTimeout)
	setDuration(o.DBWriteTimeout, &config.Database.WriteTimeout)

	setString(o.Timezone, &config.BusinessHours.Timezone)
	setString(o.DayStart, &config.BusinessHours.DayStart)
	setString(o.DayEnd, &config.BusinessHours.DayEnd)
	setString(o.Weekend, &config.BusinessHours.Weekend)

	setString(o.ServerAddr, &config.Server.Addr)

	setString(o.Placeholder, &config.Display.Placeholder)
	setString(o.TimeFormat, &config.Display.TimeFormat)

	setDuration(o.Timeout, &config.Application.Timeout)
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
	setString(o.LogFormat, &config.Application.LogFormat)
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
