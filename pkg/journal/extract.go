package journal

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingMood and ErrMissingSummary reject an extraction payload whose
// mandatory sub-fields are absent; nothing from such a payload is merged.
var (
	ErrMissingMood    = errors.New("journal: extracted_data missing mandatory field 'mood'")
	ErrMissingSummary = errors.New("journal: extracted_data missing mandatory field 'summary'")
)

// Extraction is the structured result of one diary analysis call. Every
// category is absent by default; the extractor is instructed to omit
// categories with no content, and Merge only touches fields that are
// present. Todos arrive as an upsert/delete pair for Reconcile.
type Extraction struct {
	Mood    string
	Summary string

	Skills  []Skill
	Hobbies []Hobby
	Goals   []Goal
	People  []Person
	Places  []Place
	Media   []MediaItem

	Food      []FoodItem
	Health    []HealthItem
	Ideas     []Idea
	Purchases []Purchase
	Emotions  []Emotion

	TodoUpserts []Todo
	TodoDeletes []string

	// Skipped lists categories whose payload had the wrong shape and was
	// treated as absent rather than merged.
	Skipped []string
}

// decodeCategory decodes one category's raw payload into dst. A wrong-typed
// payload is recoverable: the category is recorded as skipped and treated
// as absent, never fatal.
func decodeCategory[T any](ex *Extraction, fields map[string]json.RawMessage, name string, dst *[]T) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		ex.Skipped = append(ex.Skipped, name)
		return
	}
	*dst = items
}

// ParseExtraction decodes a raw extracted_data object. The mandatory mood
// and summary fields must be present as strings; each category is decoded
// independently so one malformed category cannot poison the rest.
func ParseExtraction(raw json.RawMessage) (*Extraction, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("journal: extracted_data is not an object: %w", err)
	}

	ex := &Extraction{}

	if err := decodeRequiredString(fields, "mood", &ex.Mood); err != nil {
		return nil, ErrMissingMood
	}
	if err := decodeRequiredString(fields, "summary", &ex.Summary); err != nil {
		return nil, ErrMissingSummary
	}

	decodeCategory(ex, fields, "skills", &ex.Skills)
	decodeCategory(ex, fields, "hobbies", &ex.Hobbies)
	decodeCategory(ex, fields, "goals", &ex.Goals)
	decodeCategory(ex, fields, "people", &ex.People)
	decodeCategory(ex, fields, "places", &ex.Places)
	decodeCategory(ex, fields, "media", &ex.Media)
	decodeCategory(ex, fields, "food", &ex.Food)
	decodeCategory(ex, fields, "health", &ex.Health)
	decodeCategory(ex, fields, "ideas", &ex.Ideas)
	decodeCategory(ex, fields, "purchases", &ex.Purchases)
	decodeCategory(ex, fields, "emotions", &ex.Emotions)
	decodeCategory(ex, fields, "todos", &ex.TodoUpserts)
	decodeCategory(ex, fields, "todos_delete", &ex.TodoDeletes)

	return ex, nil
}

func decodeRequiredString(fields map[string]json.RawMessage, name string, dst *string) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("missing %s", name)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	*dst = s
	return nil
}
