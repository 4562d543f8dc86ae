package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
)

func TestNewJSONWriter_WritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo)

	logger.Info("snapshot built", "participants", 4, "error", errors.New("boom"), "dangling")
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := sonic.UnmarshalString(lines[0], &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if record["msg"] != "snapshot built" || record["level"] != "INFO" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record["participants"] != float64(4) {
		t.Fatalf("unexpected participants field: %v", record["participants"])
	}
	if record["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", record["error"])
	}
	if _, ok := record["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q): got=%s want=%s", raw, got, want)
		}
	}
}

func TestSetMirror(t *testing.T) {
	t.Cleanup(func() { SetMirror(nil) })

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, _ ...any) {
		got = append(got, level.String()+":"+msg)
	})

	logger := NewJSONWriter(&bytes.Buffer{}, LevelInfo)
	logger.WarnContext(context.Background(), "retrying")
	logger.Debug("filtered")

	SetMirror(nil)
	logger.Info("after reset")

	if len(got) != 1 || got[0] != "warn:retrying" {
		t.Fatalf("unexpected mirrored records: %v", got)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil || logger.Named("x") == nil {
		t.Fatalf("expected nop logger")
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}
