// Package main is the entry point for hexref.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/hexref/internal/config"
	"github.com/samdwyer/hexref/internal/telemetry"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const usage = `usage: hexref <command> [flags]

commands:
  load     load all game data and print a summary
  modules  pick optional modules and reload on every change
  wizard   run a choice wizard from a JSON file
`

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}
	os.Exit(run(os.Args[1:]))
}

// run executes one command and returns the process exit status. Deferred
// cleanup runs before main exits.
func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return 1
	}
	setupLogging(cfg)

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled() {
		shutdown, err := telemetry.Setup(ctx, telemetry.Config{
			ServiceVersion: version,
			Environment:    cfg.Env,
			Endpoint:       cfg.Honeycomb.Endpoint,
			APIKey:         cfg.Honeycomb.APIKey,
			Dataset:        cfg.Honeycomb.Dataset,
		})
		if err != nil {
			slog.Warn("telemetry setup failed, continuing without tracing", slog.Any("error", err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					slog.Error("shutting down telemetry", slog.Any("error", err))
				}
			}()
		}
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "load":
		err = runLoad(ctx, cfg, rest)
	case "modules":
		err = runModules(ctx, cfg, rest)
	case "wizard":
		err = runWizard(ctx, rest)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		return 2
	}

	if err != nil {
		var exit exitCode
		if errors.As(err, &exit) {
			return int(exit)
		}
		slog.Error(cmd+" failed", slog.Any("error", err))
		return 1
	}
	return 0
}

// setupLogging configures the global slog logger based on the environment.
// Development uses text format; production uses JSON. Logs go to stderr so
// command output on stdout stays machine-readable.
func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
