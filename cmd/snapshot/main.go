// Command snapshot builds one league snapshot and writes it to stdout as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/app"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/config"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/usecase"
)

func main() {
	limit := flag.Int("limit", 0, "leaderboard length, 1-20 (0 uses SNAPSHOT_RECORD_LIMIT)")
	roster := flag.String("roster", "", "YAML roster file, overrides FPL_ROSTER_FILE and FPL_PARTICIPANTS")
	pretty := flag.Bool("pretty", false, "indent the JSON output")
	flag.Parse()

	if err := run(*limit, *roster, *pretty, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(limit int, roster string, pretty bool, stdout io.Writer) error {
	if roster != "" {
		if err := os.Setenv("FPL_ROSTER_FILE", roster); err != nil {
			return fmt.Errorf("set roster file: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// stdout carries the snapshot, so logs go to stderr.
	logger := logging.NewJSONWriter(os.Stderr, cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services := app.NewServices(cfg, logger)
	snapshot, err := services.Snapshots.Build(ctx, usecase.BuildInput{RecordLimit: limit})
	if err != nil {
		return fmt.Errorf("build snapshot: %w", err)
	}

	var out []byte
	if pretty {
		out, err = sonic.ConfigStd.MarshalIndent(snapshot, "", "  ")
	} else {
		out, err = sonic.Marshal(snapshot)
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := fmt.Fprintln(stdout, string(out)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
