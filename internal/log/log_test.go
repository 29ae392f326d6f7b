package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"none", LevelNone},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComponentLogging(t *testing.T) {
	defer SetOutput(output)
	defer SetLevel(currentLevel())

	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)

	Debug("probe").Msg("hidden")
	Info("probe").Str("url", "http://example.com").Msg("Connected")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug line written at info level: %q", got)
	}
	if !strings.Contains(got, "Connected") || !strings.Contains(got, "component=probe") {
		t.Errorf("info line missing message or component: %q", got)
	}

	SetLevel(LevelNone)
	if zerolog.GlobalLevel() != zerolog.Disabled {
		t.Errorf("GlobalLevel() = %v, want disabled", zerolog.GlobalLevel())
	}
}
