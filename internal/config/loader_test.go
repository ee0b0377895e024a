package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoader_Precedence(t *testing.T) {
	path := writeConfigFile(t, `
business_hours:
  timezone: UTC
  day_start: "09:00"
  day_end: "17:00"
display:
  placeholder: "?"
`)
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("OPS_BH_DAY_END", "18:00")

	dayStart := "10:00"
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{DayStart: &dayStart})
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.BusinessHours.Timezone, "file beats defaults")
	assert.Equal(t, "18:00", cfg.BusinessHours.DayEnd, "environment beats file")
	assert.Equal(t, "10:00", cfg.BusinessHours.DayStart, "flags beat everything")
	assert.Equal(t, "?", cfg.Display.Placeholder)
}

func TestLoader_ExplicitFileBeatsEnvironmentPath(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	path := writeConfigFile(t, "server:\n  addr: \":9999\"\n")

	cfg, err := NewLoader().WithFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoader_OverridesConfigFile(t *testing.T) {
	path := writeConfigFile(t, "display:\n  placeholder: none\n")

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{ConfigFile: &path})
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Display.Placeholder)
}

func TestLoader_InvalidOverrideFails(t *testing.T) {
	badFormat := "yaml"
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{LogFormat: &badFormat})
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoader_AllOverrides(t *testing.T) {
	dir := t.TempDir()
	driver, filename := DriverSQLite, "x.db"
	qt, wt, timeout := 2*time.Second, 3*time.Second, 4*time.Second
	tz, end, weekend := "UTC", "19:00", "sun"
	addr, placeholder, format := ":7070", "n/a", "2006-01-02"
	verbose, logFormat := true, "json"

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		DBDriver: &driver, DBDir: &dir, DBFilename: &filename,
		DBQueryTimeout: &qt, DBWriteTimeout: &wt,
		Timezone: &tz, DayEnd: &end, Weekend: &weekend,
		ServerAddr: &addr, Placeholder: &placeholder, TimeFormat: &format,
		Timeout: &timeout, Verbose: &verbose, LogFormat: &logFormat,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "x.db"), cfg.GetDatabasePath())
	assert.Equal(t, qt, cfg.Database.QueryTimeout)
	assert.Equal(t, wt, cfg.Database.WriteTimeout)
	assert.Equal(t, "19:00", cfg.BusinessHours.DayEnd)
	assert.Equal(t, "sun", cfg.BusinessHours.Weekend)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "n/a", cfg.Display.Placeholder)
	assert.Equal(t, "2006-01-02", cfg.Display.TimeFormat)
	assert.Equal(t, timeout, cfg.Application.Timeout)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "json", cfg.Application.LogFormat)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseDurationWithFallback("3s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("soon", time.Second))
	assert.Equal(t, 7, ParseIntWithFallback("7", 1))
	assert.Equal(t, 1, ParseIntWithFallback("seven", 1))
	assert.True(t, ParseBoolWithFallback("yes", true))
	assert.False(t, ParseBoolWithFallback("false", true))
	assert.Equal(t, uint32(0750), ParseUint32WithFallback("750", 8, 0))
	assert.Equal(t, uint32(1), ParseUint32WithFallback("9", 8, 1))
}
