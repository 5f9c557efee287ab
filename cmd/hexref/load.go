package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/samdwyer/hexref/internal/config"
	"github.com/samdwyer/hexref/internal/jsonvalue"
	"github.com/samdwyer/hexref/internal/loader"
	"github.com/samdwyer/hexref/internal/locale"
	"github.com/samdwyer/hexref/internal/transport"
)

// exitCode is returned by a command that wants a specific process status
// without an error log line.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// newFetcher builds a transport fetcher from configuration.
func newFetcher(cfg *config.Config, root string) (*transport.Fetcher, error) {
	return transport.New(root,
		transport.WithHTTPClient(&http.Client{Timeout: cfg.Fetch.Timeout}),
		transport.WithMaxRetries(cfg.Fetch.MaxRetries),
		transport.WithBaseDelay(cfg.Fetch.RetryBaseDelay),
		transport.WithRetryHook(func(attempt int, delay time.Duration, err error) {
			slog.Warn("retrying fetch",
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
				slog.Any("error", err),
			)
		}),
	)
}

func runLoad(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	root := fs.String("root", cfg.ContentRoot, "content root URL")
	query := fs.String("query", cfg.LoadQuery, "page query string, e.g. lang=es&module=salvage")
	dump := fs.String("dump", "", "print the named dataset as JSON")
	collisions := fs.Bool("collisions", false, "report move ids defined by more than one file")
	if err := fs.Parse(args); err != nil {
		return exitCode(2)
	}

	params := locale.ParseParams(*query)
	fetcher, err := newFetcher(cfg, *root)
	if err != nil {
		return err
	}

	session := loader.NewSession(fetcher, params)
	if _, err := session.LoadAllGameData(ctx); err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}

	printSummary(os.Stdout, session)

	if *dump != "" {
		v, ok := session.Published(*dump)
		if !ok {
			return fmt.Errorf("no dataset named %q (have %s)", *dump, strings.Join(session.PublishedNames(), ", "))
		}
		out, err := jsonvalue.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", *dump, err)
		}
		fmt.Printf("%s\n", out)
	}

	if *collisions {
		printCollisions(os.Stdout, session)
	}
	return nil
}

func printSummary(w io.Writer, s *loader.Session) {
	fmt.Fprintf(w, "session %s  lang=%s", s.ID(), s.Language())
	if mods := s.EnabledModules(); len(mods) > 0 {
		fmt.Fprintf(w, "  modules=%s", strings.Join(mods, ","))
	}
	fmt.Fprintln(w)

	for _, name := range s.PublishedNames() {
		v, _ := s.Published(name)
		fmt.Fprintf(w, "  %-16s %-7s %d\n", name, v.Kind(), count(v))
	}
}

func printCollisions(w io.Writer, s *loader.Session) {
	sources := s.MoveSources()
	if sources == nil {
		return
	}
	ids := sources.Collisions()
	if len(ids) == 0 {
		fmt.Fprintln(w, "no move id collisions")
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "collision %q:\n", id)
		for _, src := range sources.Sources(id) {
			fmt.Fprintf(w, "  %s (%s)\n", src.File, src.Role)
		}
	}
}

func count(v jsonvalue.Value) int {
	switch t := v.(type) {
	case jsonvalue.Array:
		return len(t)
	case *jsonvalue.Object:
		return t.Len()
	}
	return 1
}
