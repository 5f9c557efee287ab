package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/samdwyer/hexref/internal/ui"
	"github.com/samdwyer/hexref/internal/wizard"
)

func runWizard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("wizard", flag.ContinueOnError)
	file := fs.String("file", "", "JSON file with the choice groups")
	title := fs.String("title", "", "wizard title")
	if err := fs.Parse(args); err != nil {
		return exitCode(2)
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "wizard: -file is required")
		return exitCode(2)
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	groups, err := wizard.ParseGroups(*file, content)
	if err != nil {
		return err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	selections, err := ui.NewWizardView(wizard.New(*title, groups)).Run(ctx, screen)
	screen.Close()
	if errors.Is(err, wizard.ErrCancelled) {
		return exitCode(1)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(selections)
}
