package ui

import (
	"strings"
	"testing"
)

func TestBanner(t *testing.T) {
	got := Banner("gpt-4o-mini", "https://api.openai.com/v1")

	for _, want := range []string{"TraceLog", "gpt-4o-mini", "https://api.openai.com/v1"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected banner to contain %q, got:\n%s", want, got)
		}
	}
	if len(strings.Split(got, "\n")) != 4 {
		t.Errorf("Expected 4 banner lines, got:\n%s", got)
	}
}

func TestFarewell(t *testing.T) {
	if !strings.Contains(Farewell(), "再见") {
		t.Error("Expected farewell text")
	}
}
