package tokenizer

import "testing"

func TestCountTokens(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Skipf("tokenizer unavailable: %v", err)
	}

	if got := tok.CountTokens(""); got != 0 {
		t.Errorf("Expected 0 tokens for empty string, got %d", got)
	}
	if got := tok.CountTokens("今天练了吉他"); got == 0 {
		t.Error("Expected non-zero token count for CJK text")
	}
}

func TestApproximate(t *testing.T) {
	if got := Approximate(""); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
	if got := Approximate("今天练琴"); got != 4 {
		t.Errorf("Expected 4 runes, got %d", got)
	}
}
