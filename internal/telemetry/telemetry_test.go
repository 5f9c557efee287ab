package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestSetupRequiresAPIKey(t *testing.T) {
	if _, err := Setup(context.Background(), Config{}); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Setup() error = %v, want ErrNoAPIKey", err)
	}
}

func TestHeaders(t *testing.T) {
	tests := []struct {
		cfg     Config
		dataset string
	}{
		{Config{APIKey: "key"}, "hexref"},
		{Config{APIKey: "key", Dataset: "staging"}, "staging"},
	}

	for _, tt := range tests {
		got := headers(tt.cfg)
		if got["x-honeycomb-team"] != "key" {
			t.Errorf("headers(%+v) team = %q, want key", tt.cfg, got["x-honeycomb-team"])
		}
		if got["x-honeycomb-dataset"] != tt.dataset {
			t.Errorf("headers(%+v) dataset = %q, want %q", tt.cfg, got["x-honeycomb-dataset"], tt.dataset)
		}
	}
}

func attrValue(attrs []attribute.KeyValue, key string) (string, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value.AsString(), true
		}
	}
	return "", false
}

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(Config{ServiceVersion: "1.2.0", Environment: "production"})

	if got, _ := attrValue(attrs, "service.version"); got != "1.2.0" {
		t.Errorf("service.version = %q, want 1.2.0", got)
	}
	if got, _ := attrValue(attrs, "deployment.environment"); got != "production" {
		t.Errorf("deployment.environment = %q, want production", got)
	}

	attrs = resourceAttributes(Config{})
	if got, _ := attrValue(attrs, "service.version"); got != "dev" {
		t.Errorf("service.version = %q, want dev", got)
	}
	if _, ok := attrValue(attrs, "deployment.environment"); ok {
		t.Error("deployment.environment should be omitted when unset")
	}
}
