// Package tokenizer provides client-side token counting for prompt size
// accounting.
package tokenizer

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the cl100k_base encoding used by current chat models.
const encodingName = "cl100k_base"

// Tokenizer counts tokens the way the model-side tokenizer does.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// New creates a tokenizer. Initialization can fail when the encoding data
// is unavailable; callers may fall back to Approximate.
func New() (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: load encoding %s: %w", encodingName, err)
	}
	return &Tokenizer{encoding: enc}, nil
}

// CountTokens returns the number of tokens in text.
func (t *Tokenizer) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}

// Approximate estimates a token count without an encoding, at roughly one
// token per rune for CJK text. Used when New fails.
func Approximate(text string) int {
	return utf8.RuneCountInString(text)
}
