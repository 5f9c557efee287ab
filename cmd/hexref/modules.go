package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/samdwyer/hexref/internal/config"
	"github.com/samdwyer/hexref/internal/loader"
	"github.com/samdwyer/hexref/internal/locale"
	"github.com/samdwyer/hexref/internal/ui"
)

func runModules(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("modules", flag.ContinueOnError)
	root := fs.String("root", cfg.ContentRoot, "content root URL")
	query := fs.String("query", cfg.LoadQuery, "initial page query string")
	if err := fs.Parse(args); err != nil {
		return exitCode(2)
	}

	params := locale.ParseParams(*query)
	fetcher, err := newFetcher(cfg, *root)
	if err != nil {
		return err
	}

	registry := loader.NewSession(fetcher, params).ModulesConfig(ctx)

	// Each toggle starts a fresh session, the way a page reload would.
	reload := func(ctx context.Context, params locale.Params) error {
		session := loader.NewSession(fetcher, params)
		if _, err := session.LoadAllGameData(ctx); err != nil {
			return err
		}
		slog.Info("reloaded game data",
			slog.String("session", session.ID()),
			slog.String("query", params.Encode()),
		)
		return nil
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	picker := ui.NewModulePicker(registry, params, reload)
	final, err := picker.Run(ctx, screen)
	screen.Close()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "?%s\n", final.Encode())
	return nil
}
