package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/magefree/decksim/internal/carddb"
	"github.com/magefree/decksim/internal/config"
	"github.com/magefree/decksim/internal/decklist"
	"github.com/magefree/decksim/internal/game"
	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/report"
	"github.com/magefree/decksim/internal/simulation"
)

const defaultConfigPath = "decksim.yaml"

var version = "dev" // set via ldflags during build

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code: 1 for bad input,
// 2 when the simulator broke one of its own invariants.
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("decksim", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to configuration file (default "+defaultConfigPath+" if present)")
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}
	if *configPath == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			*configPath = defaultConfigPath
		}
	}
	if fs.NArg() > 0 && !fs.Changed("deck") {
		if err := fs.Set("deck", fs.Arg(0)); err != nil {
			fmt.Fprintf(stderr, "Invalid deck argument: %v\n", err)
			return 1
		}
	}

	// Load configuration
	cfg, err := config.Load(*configPath, fs)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("starting decksim",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.String("deck", cfg.Deck.Path),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := simulate(ctx, cfg, stdout, logger); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, game.ErrInvariantViolation) {
			return 2
		}
		return 1
	}
	return 0
}

func simulate(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *zap.Logger) error {
	list, err := decklist.Load(cfg.Deck.Path)
	if err != nil {
		return err
	}
	if cfg.Deck.Commander != "" {
		if err := list.MarkCommander(cfg.Deck.Commander); err != nil {
			return fmt.Errorf("%w: %w", game.ErrSetup, err)
		}
	}
	logger.Info("deck list loaded",
		zap.Int("cards", list.Size()),
		zap.Strings("commanders", list.Commanders()),
	)

	catalog, err := loadCatalog(ctx, cfg.CardDB, list.Names(), logger)
	if err != nil {
		return err
	}

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	template, err := game.Build(catalog, list.Library(), list.Commanders(), logger.Named("game"))
	if err != nil {
		return err
	}

	runner := simulation.NewRunner(template, logger.Named("simulation"))
	batch, err := runner.Run(ctx, simulation.Options{
		Runs:     cfg.Simulation.Runs,
		Workers:  cfg.Simulation.Workers,
		Seed:     cfg.Simulation.Seed,
		Settings: settings,
	})
	if err != nil {
		return err
	}

	out := stdout
	if cfg.Report.Output != "" {
		f, err := os.Create(cfg.Report.Output)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.Write(out, cfg.Report.Format, report.ForBatch(batch)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// loadCatalog wires the card sources: the directory cache, the optional
// database cache and Scryfall unless running offline.
func loadCatalog(ctx context.Context, cfg config.CardDBConfig, names []string, logger *zap.Logger) (*card.Catalog, error) {
	logger = logger.Named("carddb")
	caches := []carddb.Cache{carddb.NewDirCache(cfg.CacheDir)}
	if cfg.Database.Enabled {
		db, err := carddb.ConnectPGCache(ctx, cfg.Database.URL, logger)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		caches = append(caches, db)
	}

	var source carddb.Source
	if !cfg.Offline {
		source = carddb.NewScryfallSource(cfg.ScryfallURL, cfg.RequestDelay, logger)
	}

	overrides, err := carddb.LoadOverrides(cfg.Overrides)
	if err != nil {
		return nil, err
	}
	if overrides.Len() > 0 {
		logger.Info("card overrides loaded", zap.Int("cards", overrides.Len()))
	}

	return carddb.NewLoader(source, caches, overrides, logger).Load(ctx, names)
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
