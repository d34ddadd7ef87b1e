package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewWithOptionsWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithOptions(Options{Level: "info", Output: &buf, JSON: true})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("rows processed", "input", 4, "output", 2)
	logger.V(1).Info("debug detail")
	out := buf.String()
	if !strings.Contains(out, `"msg":"rows processed"`) || !strings.Contains(out, `"output":2`) {
		t.Fatalf("unexpected log output: %s", out)
	}
	if strings.Contains(out, "debug detail") {
		t.Fatalf("debug line leaked at info level: %s", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()).GetSink() != nil {
		t.Fatalf("expected discard logger without a stored logger")
	}
	logger, err := New("error")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	ctx := IntoContext(context.Background(), logger)
	if FromContext(ctx).GetSink() == nil {
		t.Fatalf("expected stored logger")
	}
}
