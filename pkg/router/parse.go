package router

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tracelog/tracelog/pkg/journal"
)

var (
	ErrMissingReply         = errors.New("router: response missing mandatory field 'reply'")
	ErrMissingExtractedData = errors.New("router: response missing mandatory field 'extracted_data'")
)

// Response is a validated analysis result: the conversational reply plus
// the structured extraction to merge.
type Response struct {
	Reply     string
	Extracted *journal.Extraction
}

// InvalidResponseError reports a response that failed validation. It
// carries the raw model output so callers can surface it for diagnostics;
// nothing from such a response is ever merged.
type InvalidResponseError struct {
	Raw string
	Err error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("router: invalid model response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Err
}

// ParseResponse decodes and validates the raw model output. The top-level
// object must carry both `reply` and `extracted_data`, and the extraction
// must pass journal.ParseExtraction (mandatory mood/summary). Validation
// failures reject the response whole.
func ParseResponse(raw string) (*Response, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &InvalidResponseError{Raw: raw, Err: fmt.Errorf("not a JSON object: %w", err)}
	}

	replyRaw, ok := fields["reply"]
	if !ok {
		return nil, &InvalidResponseError{Raw: raw, Err: ErrMissingReply}
	}
	var reply string
	if err := json.Unmarshal(replyRaw, &reply); err != nil {
		return nil, &InvalidResponseError{Raw: raw, Err: ErrMissingReply}
	}

	extractedRaw, ok := fields["extracted_data"]
	if !ok {
		return nil, &InvalidResponseError{Raw: raw, Err: ErrMissingExtractedData}
	}

	ex, err := journal.ParseExtraction(extractedRaw)
	if err != nil {
		return nil, &InvalidResponseError{Raw: raw, Err: err}
	}

	return &Response{Reply: reply, Extracted: ex}, nil
}
