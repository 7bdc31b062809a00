// Command worldsim runs a deterministic agent-based world simulation to a
// tick bound, optionally resuming from a JSON snapshot and writing one on
// exit (internal/snapshot). It is a flag-lite exerciser of the
// internal/universe library, not the full CLI described in spec.md §6 (the
// run-artifact directory layout and batch dispatch there are out of scope).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/talgya/mini-world/internal/observation"
	"github.com/talgya/mini-world/internal/snapshot"
	"github.com/talgya/mini-world/internal/universe"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	var (
		seed       = flag.Uint("seed", 42, "world RNG seed")
		ticks      = flag.Uint64("ticks", 1000, "run until the world's tick counter reaches this value (0 = run until interrupted)")
		logEvery   = flag.Uint64("log-every", 100, "log a stats line every N ticks (0 = only at the end)")
		loadPath   = flag.String("load", "", "resume from a snapshot JSON file instead of generating a fresh world")
		savePath   = flag.String("save", "", "write a snapshot JSON file on exit (interrupt or tick bound reached)")
		savePretty = flag.Bool("pretty", false, "pretty-print the saved snapshot")
	)
	flag.Parse()

	banner("mini-world")

	u, err := buildUniverse(*loadPath, uint32(*seed))
	if err != nil {
		slog.Error("failed to build universe", "error", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	interrupted := make(chan struct{})
	go func() {
		sig := <-sigCh
		slog.Info("received signal, stopping after current tick", "signal", sig)
		close(interrupted)
	}()

	slog.Info("simulation starting", "seed", *seed, "tick", u.Tick(), "entities", len(u.GetAllEntities()))

	run(u, *ticks, *logEvery, interrupted)

	if *savePath != "" {
		if err := saveSnapshot(u, *savePath, *savePretty); err != nil {
			slog.Error("failed to write snapshot", "error", err, "path", *savePath)
			os.Exit(1)
		}
		slog.Info("snapshot written", "path", *savePath, "tick", u.Tick())
	}

	fmt.Println(u.GetStats())
}

func buildUniverse(loadPath string, seed uint32) (*universe.Universe, error) {
	if loadPath == "" {
		cfg := universe.DefaultConfig()
		cfg.Seed = seed
		return universe.New(cfg)
	}

	data, err := os.ReadFile(loadPath)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", loadPath, err)
	}
	u, err := snapshot.Load(data)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", loadPath, err)
	}
	slog.Info("resumed from snapshot", "path", loadPath, "tick", u.Tick())
	return u, nil
}

// run advances u one tick at a time up to maxTicks (0 meaning unbounded),
// stopping early if interrupted fires, and logs a stats line every logEvery
// ticks.
func run(u *universe.Universe, maxTicks, logEvery uint64, interrupted <-chan struct{}) {
	for maxTicks == 0 || u.Tick() < maxTicks {
		select {
		case <-interrupted:
			return
		default:
		}

		u.Step()

		if logEvery > 0 && u.Tick()%logEvery == 0 {
			logStats(u.GetStats())
		}
	}
}

func logStats(s observation.Stats) {
	slog.Info("tick", "stats", s.String())
}

func saveSnapshot(u *universe.Universe, path string, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return snapshot.Write(f, u, pretty)
}

func banner(name string) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "\033[1m%s\033[0m — deterministic agent-based world simulator\n", name)
		return
	}
	fmt.Fprintf(os.Stderr, "%s — deterministic agent-based world simulator\n", name)
}
