package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/match3/config"
	"github.com/plus3/match3/match3"
	"github.com/plus3/match3/progression"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath     string
	duration       time.Duration
	maxTicks       int
	seed           uint64
	gcPauseMetrics bool
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "match3-sim",
		Short:        "Autoplay every level headlessly and report on the run",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Sim.Seed = opts.seed
			}
			log, err := cfg.Log.Logger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.duration)
			defer cancel()

			report, err := simulate(ctx, cfg, opts, log)
			if err != nil {
				return err
			}
			return report.Generate(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().DurationVar(&opts.duration, "duration", 30*time.Second, "wall clock limit for the whole run")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", 200000, "tick limit per level")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "include GC pause metrics in the report")
	return cmd
}

// simulate plays the catalogue in order until every level is won, a level
// hits the tick limit or ctx ends.
func simulate(ctx context.Context, cfg config.Config, opts options, log *zap.Logger) (*Report, error) {
	levels, err := cfg.Catalogue()
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	tracker := progression.NewTracker(levels, log)
	game := match3.NewGame(cfg.Settings(),
		match3.WithLogger(log),
		match3.WithRand(rng),
		match3.WithUnlocks(tracker),
	)
	counter := progression.NewCounter(0, nil, log)
	game.OnMatch(counter.Record)
	player := &Autoplayer{rng: rng}

	report := &Report{
		Seed:           seed,
		Duration:       opts.duration,
		MaxTicks:       opts.maxTicks,
		GCPauseMetrics: opts.gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	for i := tracker.Next(); i >= 0 && ctx.Err() == nil; i = tracker.Next() {
		lvl := levels[i]
		if err := game.Start(lvl.Config()); err != nil {
			return nil, fmt.Errorf("start %s: %w", lvl.Name, err)
		}
		counter.Reset(lvl.NeededMatches)

		result := playLevel(ctx, game, counter, player, opts.maxTicks)
		result.Name = lvl.Name
		result.Session = game.Session().String()
		result.Unlocks = tracker.Unlocks()
		game.Stop()

		report.Levels = append(report.Levels, result)
		if !result.Won {
			log.Warn("level not won", zap.String("level", lvl.Name), zap.Int("ticks", result.Ticks))
			break
		}
		if err := tracker.Finish(i); err != nil {
			return nil, err
		}
	}

	report.TotalTime = time.Since(start)
	report.Finished = tracker.Next() < 0
	report.Systems = game.Scheduler().GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)
	return report, nil
}

func playLevel(ctx context.Context, game *match3.Game, counter *progression.Counter, player *Autoplayer, maxTicks int) LevelResult {
	result := LevelResult{Needed: counter.Needed()}
	tickTime := Stats{}

	for result.Ticks < maxTicks && !counter.Won() && ctx.Err() == nil {
		if game.State() == match3.InPlay {
			snap := game.Snapshot()
			m := player.Next(snap.Pieces(), snap.Size)
			game.SwapAt(m.R1, m.C1, m.R2, m.C2)
			result.Swaps++
		}

		tickStart := time.Now()
		game.Tick()
		tickTime.Samples = append(tickTime.Samples, time.Since(tickStart))
		result.Ticks++
	}

	tickTime.Finalize()
	result.TickTime = tickTime
	result.Won = counter.Won()
	result.Matches = counter.Total()
	for _, shape := range []match3.Shape{match3.ShapeTriple, match3.ShapeQuadLine, match3.ShapeLBend, match3.ShapeFiveLine} {
		result.ByShape = append(result.ByShape, ShapeCount{Shape: shape.String(), Count: counter.ByShape(shape)})
	}
	return result
}
