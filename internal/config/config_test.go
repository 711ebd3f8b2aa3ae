package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)

	assert.Equal(t, -1.0, cfg.Clean.ReturnMin)
	assert.Equal(t, 5.0, cfg.Clean.ReturnMax)

	assert.Equal(t, []string{"FEDFUNDS", "MORTGAGE30US", "CPIAUCSL", "UNRATE"}, cfg.Macro.Series)
	assert.True(t, cfg.Macro.AllowSynthetic)
	assert.Equal(t, uint64(42), cfg.Macro.SyntheticSeed)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults pass",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid log level",
			mutate: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid log output",
			mutate: func(c *Config) {
				c.Logging.Output = "syslog"
			},
			wantErr: true,
		},
		{
			name: "return max below min",
			mutate: func(c *Config) {
				c.Clean.ReturnMin = 2.0
				c.Clean.ReturnMax = 1.0
			},
			wantErr: true,
		},
		{
			name: "equal bounds rejected",
			mutate: func(c *Config) {
				c.Clean.ReturnMin = 1.0
				c.Clean.ReturnMax = 1.0
			},
			wantErr: true,
		},
		{
			name: "empty series list",
			mutate: func(c *Config) {
				c.Macro.Series = []string{}
			},
			wantErr: true,
		},
		{
			name: "bad synthetic month layout",
			mutate: func(c *Config) {
				c.Macro.SyntheticStart = "2004-01-01"
			},
			wantErr: true,
		},
		{
			name: "synthetic end before start",
			mutate: func(c *Config) {
				c.Macro.SyntheticStart = "2024-12"
				c.Macro.SyntheticEnd = "2004-01"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_NormalizesFormat(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestMacroConfig_SyntheticPeriod(t *testing.T) {
	m := MacroConfig{SyntheticStart: "2004-01", SyntheticEnd: "2024-12"}

	start, end, err := m.SyntheticPeriod()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REITETL_LOGGING_LEVEL", "debug")
	t.Setenv("REITETL_CLEAN_RETURN_MAX", "10.0")
	t.Setenv("REITETL_MACRO_SERIES", "FEDFUNDS,CPIAUCSL")
	t.Setenv("REITETL_MACRO_ALLOW_SYNTHETIC", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10.0, cfg.Clean.ReturnMax)
	assert.Equal(t, []string{"FEDFUNDS", "CPIAUCSL"}, cfg.Macro.Series)
	assert.False(t, cfg.Macro.AllowSynthetic)

	// Untouched sections keep their defaults
	assert.Equal(t, -1.0, cfg.Clean.ReturnMin)
}

func TestLoad_RejectsInvalidEnv(t *testing.T) {
	t.Setenv("REITETL_LOGGING_LEVEL", "loud")

	_, err := Load()
	assert.Error(t, err)
}
