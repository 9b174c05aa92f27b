package logging

import "testing"

func TestNewAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "warning", "error", "INFO"} {
		logger, err := New(level)
		if err != nil {
			t.Fatalf("level %q: %v", level, err)
		}
		if logger == nil {
			t.Fatalf("level %q: nil logger", level)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
