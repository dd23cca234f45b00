package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/nucleotide/internal/config"
	"github.com/udisondev/nucleotide/internal/data"
	"github.com/udisondev/nucleotide/internal/db"
	"github.com/udisondev/nucleotide/internal/game/battle"
	"github.com/udisondev/nucleotide/internal/model"
	"github.com/udisondev/nucleotide/internal/run"
)

const ConfigPath = "config/nucleotide.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := runGame(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func runGame(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("NUCLEOTIDE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGame(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	battle.EnableDebugLogging(cfg.LogLevel == "debug")

	slog.Info("nucleotide starting", "config", cfgPath, "log_level", cfg.LogLevel)

	reg, err := data.LoadRegistry(cfg.Specs.GeneDir, cfg.Specs.EnemyDir)
	if err != nil {
		return fmt.Errorf("loading specs: %w", err)
	}
	if err := reg.ValidateGenome(cfg.Player.Genome); err != nil {
		return fmt.Errorf("player genome: %w", err)
	}

	seed := cfg.Battle.Seed
	if seed == 0 {
		if seed, err = run.NewSeed(); err != nil {
			return err
		}
	}
	queue, err := run.BuildQueue(reg, cfg.Battle.Encounters, seed)
	if err != nil {
		return fmt.Errorf("building enemy queue: %w", err)
	}
	slog.Info("run prepared", "seed", seed, "battles", queue.Len())

	var recorder run.Recorder = run.NopRecorder{}
	if cfg.PersistRuns {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		recorder = db.NewRunRepository(database.Pool())
	}

	player := model.NewPlayer(cfg.Player.Name, cfg.Player.Health, cfg.Player.Energy, cfg.Player.Genome)
	console := newConsole(os.Stdout)
	session := run.NewSession(reg, player, queue, recorder, console, run.Config{
		TickInterval: cfg.Battle.TickInterval,
		AutoContinue: cfg.Battle.AutoContinue,
		AutoReward:   cfg.Battle.AutoReward,
		RunAwayTurns: cfg.Battle.RunAwayTurns,
		Seed:         seed,
	})

	policy, err := run.PolicyByName(cfg.Battle.RewardPolicy)
	if err != nil {
		return err
	}
	session.SetRewardPolicy(policy)

	lines := readLines(os.Stdin)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return session.Start(gctx)
	})
	g.Go(func() error {
		return console.serve(gctx, session, lines)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	slog.Info("nucleotide stopped", "run", session.RunID(), "outcome", session.Outcome())
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
