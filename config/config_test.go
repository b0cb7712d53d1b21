package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/match3/config"
	"github.com/plus3/match3/match3"
	"github.com/plus3/match3/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "match3.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MATCH3_CONFIG", "")

	c, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 10, c.Board.Size)
	assert.Equal(t, match3.DefaultSettings, c.Settings())
	assert.Zero(t, c.Sim.Seed)
	assert.Equal(t, "info", c.Log.Level)

	levels, err := c.Catalogue()
	require.NoError(t, err)
	assert.Equal(t, progression.DefaultLevels(), levels)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[board]
size = 8

[sim]
tick_rate = 30
fall_rate = 0.5
seed = 42

[[levels]]
name = "warmup"
needed_matches = 5
unlocks = ["liner", "bomb"]

[[levels]]
name = "finale"
board_size = 12
needed_matches = 50
unlocks = ["eliminator"]
`)

	c, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, match3.Settings{TickRate: 30, FallRate: 0.5}, c.Settings())
	assert.Equal(t, uint64(42), c.Sim.Seed)

	levels, err := c.Catalogue()
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, progression.Level{
		Name:          "warmup",
		BoardSize:     8,
		NeededMatches: 5,
		Unlocks:       match3.UnlockFlags{Liner: true, Bomb: true},
	}, levels[0], "a level without a size uses the board default")
	assert.Equal(t, 12, levels[1].BoardSize)
	assert.True(t, levels[1].Unlocks.Eliminator)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MATCH3_CONFIG", "")
	t.Setenv("MATCH3_SIM_TICK_RATE", "120")
	t.Setenv("MATCH3_LOG_LEVEL", "debug")

	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 120, c.Sim.TickRate)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "read config")

	_, err = config.Load(writeConfig(t, "[sim]\ntick_rate = 0\n"))
	assert.ErrorContains(t, err, "tick_rate")

	_, err = config.Load(writeConfig(t, `
[[levels]]
name = "odd"
needed_matches = 3
unlocks = ["rainbow"]
`))
	assert.ErrorContains(t, err, `unknown unlock "rainbow"`)
}

func TestLogConfigLogger(t *testing.T) {
	log, err := config.LogConfig{Level: "warn", Development: true}.Logger()
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	_, err = config.LogConfig{Level: "loud"}.Logger()
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "[log]\nlevel = \"loud\"\n"))
	assert.ErrorContains(t, err, "log.level")
}
