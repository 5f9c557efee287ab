package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/samdwyer/hexref/data"
	"github.com/samdwyer/hexref/internal/config"
	"github.com/samdwyer/hexref/internal/loader"
	"github.com/samdwyer/hexref/internal/locale"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func loadSession(t *testing.T, query string) *loader.Session {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle("/data/", data.Handler())
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{Fetch: config.FetchConfig{
		MaxRetries:     0,
		RetryBaseDelay: time.Millisecond,
		Timeout:        time.Second,
	}}
	fetcher, err := newFetcher(cfg, srv.URL+"/")
	if err != nil {
		t.Fatalf("newFetcher() error: %v", err)
	}

	s := loader.NewSession(fetcher, locale.ParseParams(query))
	if _, err := s.LoadAllGameData(context.Background()); err != nil {
		t.Fatalf("LoadAllGameData() error: %v", err)
	}
	return s
}

func TestPrintSummary(t *testing.T) {
	s := loadSession(t, "module=salvage")

	var buf bytes.Buffer
	printSummary(&buf, s)
	out := buf.String()

	if !strings.Contains(out, "lang=en  modules=salvage") {
		t.Errorf("summary header missing language and modules:\n%s", out)
	}
	if !strings.Contains(out, "moves") || !strings.Contains(out, "array") {
		t.Errorf("summary should list the moves dataset:\n%s", out)
	}
}

func TestPrintCollisions(t *testing.T) {
	var buf bytes.Buffer
	printCollisions(&buf, loadSession(t, "module=salvage"))
	out := buf.String()

	if !strings.Contains(out, `collision "reload"`) {
		t.Errorf("printCollisions() should report reload:\n%s", out)
	}
	if !strings.Contains(out, "data/modules/salvage/moves/engineer.json (Engineer)") {
		t.Errorf("printCollisions() should name each source:\n%s", out)
	}

	buf.Reset()
	printCollisions(&buf, loadSession(t, ""))
	if got := strings.TrimSpace(buf.String()); got != "no move id collisions" {
		t.Errorf("printCollisions() = %q, want no collisions", got)
	}
}
