package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug().Msg("hidden")
	log.Warn().Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug output should be suppressed at warn level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("warn output missing")
	}
}

func TestNewUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "bogus")

	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("unknown level should fall back to info, got %s", log.GetLevel())
	}
}
