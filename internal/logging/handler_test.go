package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(h)

	now := time.Now()
	logger.Info("resolved configuration", "server", "review")

	output := buf.String()
	for _, want := range []string{"INFO", "resolved configuration", "server=review", now.Format(time.Kitchen)} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("server", "review").WithGroup("paths")

	logger.Info("expanded", "socket", "/home/u/.gertty.sock")

	output := buf.String()
	if !strings.Contains(output, "server=review") {
		t.Errorf("expected common attribute in output, got: %q", output)
	}
	if !strings.Contains(output, "paths.socket=/home/u/.gertty.sock") {
		t.Errorf("expected grouped attribute in output, got: %q", output)
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("expected Error level to be enabled")
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(t.Context(), LevelTrace, "field default applied")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE level in output, got: %q", buf.String())
	}
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("credentials", "password", "hunter22", "dburi", "postgresql://gertty:hunter22@db/gertty")

	output := buf.String()
	if strings.Contains(output, "hunter22") {
		t.Errorf("password leaked into output: %q", output)
	}
	if !strings.Contains(output, "password=****er22") {
		t.Errorf("expected masked password, got: %q", output)
	}
}
