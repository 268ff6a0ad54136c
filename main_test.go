package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/fukurin00/grid_routing_provider/config"
	"github.com/fukurin00/grid_routing_provider/msg"
	"github.com/fukurin00/grid_routing_provider/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setFlag(t *testing.T, name, value string) {
	t.Helper()
	old := flag.Lookup(name).Value.String()
	require.NoError(t, flag.Set(name, value))
	t.Cleanup(func() { flag.Set(name, old) })
}

func TestFindJSON(t *testing.T) {
	gridPath := filepath.Join(t.TempDir(), "grid.txt")
	require.NoError(t, os.WriteFile(gridPath, []byte("Start:0,0\nGoal:2,2\n0 0 0\n1 1 0\n0 0 0\n"), 0644))
	setFlag(t, "grid", gridPath)
	setFlag(t, "format", "json")

	var out bytes.Buffer
	logger := config.NewLogger("test", "off", io.Discard)
	require.NoError(t, find(config.Default(), routing.AStar{}, logger, &out))

	m, err := msg.ParsePathMsg(out.Bytes())
	require.NoError(t, err)
	assert.True(t, m.Found)
	assert.Equal(t, 4, m.Cost)
}

func TestFindDefaultGridDump(t *testing.T) {
	color.NoColor = true
	setFlag(t, "dump", "true")
	setFlag(t, "goal", "0,2")

	var out bytes.Buffer
	cfg := config.Default()
	cfg.DefaultSize = 3
	require.NoError(t, find(cfg, routing.AStar{}, config.NewLogger("test", "off", io.Discard), &out))
	assert.Equal(t, "cost 2: (0,0),(0,1),(0,2)\nS*G\n___\n___\n", out.String())
}

func TestFindErrors(t *testing.T) {
	logger := config.NewLogger("test", "off", io.Discard)
	setFlag(t, "grid", filepath.Join(t.TempDir(), "missing.txt"))
	err := find(config.Default(), routing.AStar{}, logger, io.Discard)
	assert.ErrorIs(t, err, routing.ErrIOFailure)

	setFlag(t, "grid", "")
	setFlag(t, "start", "nope")
	err = find(config.Default(), routing.AStar{}, logger, io.Discard)
	assert.ErrorIs(t, err, routing.ErrMalformedInput)
}

func TestLoggingSettings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")
	logger := config.NewLogger("test", "info", io.Discard)
	closer, err := LoggingSettings(logger, dir)
	require.NoError(t, err)
	logger.Infof("hello")
	require.NoError(t, closer.Close())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	body, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(body), "hello")
}
