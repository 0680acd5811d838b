package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig
	require.NoError(t, c.Validate())
	assert.Equal(t, 2*time.Hour, c.GameTTL())
	assert.Equal(t, 5*time.Minute, c.SweepEvery())
	assert.Equal(t, 10*time.Second, c.ClientTimeout())
	assert.Empty(t, c.Server.WebDir, "static routes are opt-in")
	assert.False(t, c.Server.OpenBrowser)
}

func TestReadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":{"addr":":9000","game_ttl":"15m"},"theme":{"symbols":{"king":75}}}`), 0o644))

	c, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.Server.Addr)
	assert.Equal(t, 15*time.Minute, c.GameTTL())
	assert.Equal(t, DefaultConfig.Server.SweepEvery, c.Server.SweepEvery)
	assert.Equal(t, 'K', c.Theme.Symbols.King)
	assert.Equal(t, DefaultTheme.Symbols.Man, c.Theme.Symbols.Man)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"server":`), 0o644))
	_, err = ReadFile(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"server":{"game_ttl":"soon"}}`), 0o644))
	_, err = ReadFile(invalid)
	var ic *InvalidConfig
	assert.True(t, errors.As(err, &ic))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"bad ttl", func(c *Config) { c.Server.GameTTL = "forever" }},
		{"zero sweep", func(c *Config) { c.Server.SweepEvery = "0s" }},
		{"negative timeout", func(c *Config) { c.Client.Timeout = "-1s" }},
		{"control symbol", func(c *Config) { c.Theme.Symbols.Man = '\t' }},
		{"c1 symbol", func(c *Config) { c.Theme.Symbols.King = 0x85 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig
			tc.mutate(&c)
			err := c.Validate()
			var ic *InvalidConfig
			require.True(t, errors.As(err, &ic), "got %v", err)
			assert.Contains(t, ic.Error(), "Config error")
		})
	}
}

func TestApplyEnv(t *testing.T) {
	c := DefaultConfig
	require.NoError(t, c.ApplyEnv(map[string]string{
		EnvAddr:      ":7000",
		EnvWebDir:    "/srv/web",
		EnvLogLevel:  "debug",
		EnvLogPretty: "false",
		EnvServerURL: "http://example.test:7000",
		EnvGameTTL:   "30m",
	}))
	assert.Equal(t, ":7000", c.Server.Addr)
	assert.Equal(t, "/srv/web", c.Server.WebDir)
	assert.Equal(t, "debug", c.Log.Level)
	assert.False(t, c.Log.Pretty)
	assert.Equal(t, "http://example.test:7000", c.Client.BaseURL)
	assert.Equal(t, 30*time.Minute, c.GameTTL())

	err := c.ApplyEnv(map[string]string{EnvLogPretty: "maybe"})
	var ic *InvalidConfig
	assert.True(t, errors.As(err, &ic))
}

func TestReadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CHECKERS_ADDR=:6000\nCHECKERS_LOG_LEVEL=warn\nUNRELATED=1\n"), 0o644))
	t.Setenv(EnvLogLevel, "error")

	env, err := ReadEnv(envFile)
	require.NoError(t, err)
	assert.Equal(t, ":6000", env[EnvAddr])
	assert.Equal(t, "error", env[EnvLogLevel], "process environment wins")
	assert.NotContains(t, env, "UNRELATED")

	env, err = ReadEnv(filepath.Join(dir, "none.env"))
	require.NoError(t, err)
	assert.Equal(t, "error", env[EnvLogLevel])
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	c := DefaultConfig
	c.Server.Addr = ":8181"
	c.Theme.ShowSquareNumbers = true
	require.NoError(t, c.SaveTo(path))

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c, *back)
}
