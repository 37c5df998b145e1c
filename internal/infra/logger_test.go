package infra

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerLevelByEnv(t *testing.T) {
	if got := newLogger("development", &bytes.Buffer{}).GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("development level = %s, want debug", got)
	}
	if got := newLogger("production", &bytes.Buffer{}).GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("production level = %s, want info", got)
	}
}

func TestNewLoggerProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("production", &buf)
	logger.Info().Msg("hello")

	out := buf.String()
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"app_env":"production"`) {
		t.Fatalf("unexpected log line: %s", out)
	}
}
