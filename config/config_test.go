package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadYamlAndEnv(t *testing.T) {
	dir := t.TempDir()
	yamlFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte("planner: reference\nmax_expansions: 100\nlog_level: debug\n"), 0644))
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GRID_ROUTING_MAX_EXPANSIONS=7\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("GRID_ROUTING_MAX_EXPANSIONS") })
	t.Setenv("GRID_ROUTING_LISTEN_ADDR", ":9999")

	c, err := Load(yamlFile, envFile)
	require.NoError(t, err)
	assert.Equal(t, "reference", c.Planner)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 7, c.MaxExpansions)
	assert.Equal(t, ":9999", c.ListenAddr)
	assert.Equal(t, 5, c.DefaultSize)
}

func TestLoadMissingEnvFileIgnored(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"), "")
	assert.Error(t, err)

	yamlFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte("log_level: loud\n"), 0644))
	_, err = Load(yamlFile, "")
	assert.Error(t, err)

	t.Setenv("GRID_ROUTING_MAX_EXPANSIONS", "many")
	_, err = Load("", "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.MaxExpansions = -1
	assert.Error(t, c.Validate())
	c = Default()
	c.DefaultSize = 0
	assert.Error(t, c.Validate())
	c = Default()
	c.MaxGridBytes = 0
	assert.Error(t, c.Validate())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test", "warn", &buf)
	assert.Equal(t, log.WARN, l.Level())
	l.Infof("hidden")
	l.Warnf("shown %d", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 1")
	assert.Equal(t, log.INFO, ParseLevel("bogus"))
}

func TestLoadDefaultSizeEnv(t *testing.T) {
	t.Setenv("GRID_ROUTING_DEFAULT_SIZE", "12")
	c, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, 12, c.DefaultSize)

	t.Setenv("GRID_ROUTING_DEFAULT_SIZE", "0")
	_, err = Load("", "")
	assert.Error(t, err)

	t.Setenv("GRID_ROUTING_DEFAULT_SIZE", "big")
	_, err = Load("", "")
	assert.Error(t, err)
}
