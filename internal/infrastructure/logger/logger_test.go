package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		log := New(Config{Level: tt.level, Format: "json"})
		if log.GetLevel() != tt.want {
			t.Errorf("New(%q) level = %s, want %s", tt.level, log.GetLevel(), tt.want)
		}
	}
}

func TestNewConsoleFormat(t *testing.T) {
	// Console format must still produce a usable logger.
	log := New(Config{Level: "info", Format: "console"})
	log.Info().Msg("console logger works")
}
