// Package simulation plays batches of independent games in parallel.
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/magefree/decksim/internal/game"
)

// Options configures a batch.
type Options struct {
	Runs    int
	Workers int
	// Seed drives the whole batch. Zero picks one from the clock.
	Seed     int64
	Settings game.Settings
}

// Batch is the outcome of a batch of games.
type Batch struct {
	ID       uuid.UUID
	Seed     int64
	Workers  int
	Settings game.Settings
	// Results holds one entry per run, in run order.
	Results []game.Stats
	Elapsed time.Duration
}

// Runner plays clones of a template game.
type Runner struct {
	template *game.Game
	logger   *zap.Logger
}

// NewRunner creates a runner for template. The template itself is never
// played.
func NewRunner(template *game.Game, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{template: template, logger: logger}
}

// Run plays opts.Runs games. Every run gets its own random source seeded from
// a sequence drawn up front, so results don't depend on the number of
// workers. The first failing run cancels the rest.
func (r *Runner) Run(ctx context.Context, opts Options) (*Batch, error) {
	if opts.Runs < 1 {
		return nil, fmt.Errorf("%w: runs must be positive, got %d", game.ErrSetup, opts.Runs)
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	batch := &Batch{
		ID:       uuid.New(),
		Seed:     seed,
		Workers:  workers,
		Settings: opts.Settings,
		Results:  make([]game.Stats, opts.Runs),
	}
	logger := r.logger.With(zap.String("batch", batch.ID.String()))
	logger.Info("starting batch",
		zap.Int("runs", opts.Runs),
		zap.Int("workers", workers),
		zap.Int64("seed", seed),
		zap.Int("turns", opts.Settings.Turns),
	)

	start := time.Now()
	seeds := runSeeds(seed, opts.Runs)

	group, runCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i := range seeds {
		if runCtx.Err() != nil {
			break
		}
		i := i
		group.Go(func() error {
			if err := runCtx.Err(); err != nil {
				return err
			}
			run := r.template.Clone().WithLogger(logger.With(zap.Int("run", i)))
			stats, err := run.Play(opts.Settings, rand.New(rand.NewSource(seeds[i])))
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i, seeds[i], err)
			}
			batch.Results[i] = stats
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		logger.Error("batch failed", zap.Error(err))
		return nil, err
	}
	// Runs skipped after a cancellation leave holes in the results.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch.Elapsed = time.Since(start)
	logger.Info("batch finished",
		zap.Duration("elapsed", batch.Elapsed),
		zap.Float64("runs_per_second", float64(opts.Runs)/batch.Elapsed.Seconds()),
	)
	return batch, nil
}

// runSeeds derives the per-run seeds from the batch seed.
func runSeeds(seed int64, n int) []int64 {
	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = master.Int63()
	}
	return seeds
}
