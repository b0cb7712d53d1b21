package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/match3/config"
	"github.com/plus3/match3/progression"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	ScreenWidth  = 640
	ScreenHeight = 720
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		debug      bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:          "match3",
		Short:        "Play the match-3 puzzle",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			return run(cfg, debug)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().BoolVar(&debug, "debug", false, "show the ImGui inspector windows")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}

func run(cfg config.Config, debug bool) error {
	log, err := cfg.Log.Logger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	levels, err := cfg.Catalogue()
	if err != nil {
		return fmt.Errorf("levels: %w", err)
	}

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Info("starting", zap.Uint64("seed", seed), zap.Int("levels", len(levels)), zap.Bool("debug", debug))

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("match3")
	ebiten.SetTPS(cfg.Sim.TickRate)

	app := NewApp(AppOptions{
		Settings: cfg.Settings(),
		Tracker:  progression.NewTracker(levels, log),
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Log:      log,
		Debug:    debug,
	})

	return gameExit(ebiten.RunGame(app))
}

// gameExit treats ebiten.Termination, wrapped or not, as a clean quit.
func gameExit(err error) error {
	if err == nil || errors.Is(err, ebiten.Termination) {
		return nil
	}
	return fmt.Errorf("run game: %w", err)
}
