package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/plus3/match3/match3"
	"github.com/plus3/match3/progression"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the game and simulation settings.
type Config struct {
	Board  BoardConfig   `mapstructure:"board"`
	Sim    SimConfig     `mapstructure:"sim"`
	Log    LogConfig     `mapstructure:"log"`
	Levels []LevelConfig `mapstructure:"levels"`
}

// BoardConfig holds the default board settings.
type BoardConfig struct {
	Size int `mapstructure:"size"`
}

// SimConfig holds the fixed step settings. A zero seed picks a random one.
type SimConfig struct {
	TickRate int     `mapstructure:"tick_rate"`
	FallRate float32 `mapstructure:"fall_rate"`
	Seed     uint64  `mapstructure:"seed"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// LevelConfig is one level of the catalogue. Unlocks name the specials
// granted on finishing it: "liner", "bomb" or "eliminator".
type LevelConfig struct {
	Name          string   `mapstructure:"name"`
	BoardSize     int      `mapstructure:"board_size"`
	NeededMatches int      `mapstructure:"needed_matches"`
	Unlocks       []string `mapstructure:"unlocks"`
}

// Load reads configuration from path (TOML) and env. When path is empty the
// MATCH3_CONFIG variable is consulted and a missing file is not an error.
// Env var overrides use prefix MATCH3_, e.g. MATCH3_SIM_TICK_RATE.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("board.size", 10)
	v.SetDefault("sim.tick_rate", match3.DefaultSettings.TickRate)
	v.SetDefault("sim.fall_rate", match3.DefaultSettings.FallRate)
	v.SetDefault("sim.seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("levels", defaultLevels())

	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv("MATCH3_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("MATCH3")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		if err := v.ReadInConfig(); err != nil && explicit {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Logger builds the zap logger described by the log section.
func (c LogConfig) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// Settings returns the fixed step settings for match3.NewGame.
func (c Config) Settings() match3.Settings {
	return match3.Settings{TickRate: c.Sim.TickRate, FallRate: c.Sim.FallRate}
}

// Catalogue converts the configured levels for progression.NewTracker.
func (c Config) Catalogue() ([]progression.Level, error) {
	levels := make([]progression.Level, 0, len(c.Levels))
	for i, lc := range c.Levels {
		unlocks, err := parseUnlocks(lc.Unlocks)
		if err != nil {
			return nil, fmt.Errorf("level %d (%s): %w", i, lc.Name, err)
		}
		size := lc.BoardSize
		if size == 0 {
			size = c.Board.Size
		}
		levels = append(levels, progression.Level{
			Name:          lc.Name,
			BoardSize:     size,
			NeededMatches: lc.NeededMatches,
			Unlocks:       unlocks,
		})
	}
	return levels, nil
}

func (c Config) validate() error {
	if c.Board.Size < 1 {
		return fmt.Errorf("board.size %d must be positive", c.Board.Size)
	}
	if c.Sim.TickRate < 1 {
		return fmt.Errorf("sim.tick_rate %d must be positive", c.Sim.TickRate)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Sim.FallRate <= 0 {
		return fmt.Errorf("sim.fall_rate %g must be positive", c.Sim.FallRate)
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("no levels configured")
	}
	for i, lc := range c.Levels {
		if lc.BoardSize < 0 || lc.NeededMatches < 1 {
			return fmt.Errorf("level %d (%s): board size %d and needed matches %d", i, lc.Name, lc.BoardSize, lc.NeededMatches)
		}
		if _, err := parseUnlocks(lc.Unlocks); err != nil {
			return fmt.Errorf("level %d (%s): %w", i, lc.Name, err)
		}
	}
	return nil
}

func parseUnlocks(names []string) (match3.UnlockFlags, error) {
	var flags match3.UnlockFlags
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "liner":
			flags.Liner = true
		case "bomb":
			flags.Bomb = true
		case "eliminator":
			flags.Eliminator = true
		default:
			return match3.UnlockFlags{}, fmt.Errorf("unknown unlock %q", name)
		}
	}
	return flags, nil
}

func defaultLevels() []map[string]any {
	var out []map[string]any
	for _, l := range progression.DefaultLevels() {
		var unlocks []string
		if l.Unlocks.Liner {
			unlocks = append(unlocks, "liner")
		}
		if l.Unlocks.Bomb {
			unlocks = append(unlocks, "bomb")
		}
		if l.Unlocks.Eliminator {
			unlocks = append(unlocks, "eliminator")
		}
		out = append(out, map[string]any{
			"name":           l.Name,
			"board_size":     l.BoardSize,
			"needed_matches": l.NeededMatches,
			"unlocks":        unlocks,
		})
	}
	return out
}
