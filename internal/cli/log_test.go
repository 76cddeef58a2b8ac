package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/SeatPlan/internal/config"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered at info level, got %q", buf.String())
	}

	logger.Info("shown")
	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Packed 2 area(s)")
	if !bytes.Contains(buf.Bytes(), []byte("Packed 2 area(s) (")) {
		t.Errorf("unexpected progress output %q", buf.String())
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if loggerFromContext(ctx) != log.Default() {
		t.Error("missing logger should fall back to log.Default()")
	}
	if configFromContext(ctx).HTTPRetries != config.DefaultHTTPRetries {
		t.Error("missing config should fall back to defaults")
	}

	l := newLogger(&bytes.Buffer{}, log.WarnLevel)
	cfg := config.Default()
	cfg.DrawingRoot = "/srv"
	ctx = withConfig(withLogger(ctx, l), cfg)

	if loggerFromContext(ctx) != l {
		t.Error("logger not carried by context")
	}
	if configFromContext(ctx).DrawingRoot != "/srv" {
		t.Error("config not carried by context")
	}
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	defer SetVersion("", "", "")

	if version != "1.0.0" || commit != "abc123" || date != "2026-01-01" {
		t.Errorf("unexpected version info %q %q %q", version, commit, date)
	}
}
