package logger

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"err", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q): want %v got %v", tc.in, tc.want, got)
		}
	}
}

func TestInitAndL(t *testing.T) {
	_ = os.Setenv("LOG_LEVEL", "debug")
	defer func() { _ = os.Unsetenv("LOG_LEVEL") }()

	Init()
	l := L()
	if l == nil {
		t.Fatalf("L() returned nil")
	}
	if l.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("want debug level, got %v", l.GetLevel())
	}
}

func TestL_LazyInit(t *testing.T) {
	base = zerolog.Logger{}
	if l := L(); l.GetLevel() == zerolog.NoLevel {
		t.Fatalf("L() must initialize the logger on first use")
	}
}
