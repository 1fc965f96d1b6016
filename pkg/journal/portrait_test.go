package journal

import (
	"strings"
	"testing"
)

func TestPortraitRoundTrip(t *testing.T) {
	doc := &PortraitDoc{
		Meta:    PortraitMeta{UpdatedAt: "2024-03-10", Entries: 12},
		Content: "你是一个在学吉他的人。\n你常去图书馆。",
	}

	b, err := SerializePortrait(doc)
	if err != nil {
		t.Fatalf("SerializePortrait failed: %v", err)
	}

	parsed, err := ParsePortrait(b)
	if err != nil {
		t.Fatalf("ParsePortrait failed: %v", err)
	}

	if parsed.Meta.UpdatedAt != doc.Meta.UpdatedAt {
		t.Errorf("Expected updated_at %s, got %s", doc.Meta.UpdatedAt, parsed.Meta.UpdatedAt)
	}
	if parsed.Meta.Entries != doc.Meta.Entries {
		t.Errorf("Expected entries %d, got %d", doc.Meta.Entries, parsed.Meta.Entries)
	}
	if parsed.Content != doc.Content {
		t.Errorf("Expected content %q, got %q", doc.Content, parsed.Content)
	}
}

func TestSerializePortraitLayout(t *testing.T) {
	b, err := SerializePortrait(&PortraitDoc{Content: "你是。"})
	if err != nil {
		t.Fatalf("SerializePortrait failed: %v", err)
	}
	if !strings.HasPrefix(string(b), "---\n") {
		t.Errorf("Expected front-matter at the top, got %q", string(b))
	}
}

func TestParsePortraitErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing delimiter", raw: "just some text"},
		{name: "unclosed block", raw: "---\nupdated_at: x\nno closing delimiter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePortrait([]byte(tt.raw)); err == nil {
				t.Fatal("Expected parse error, got none")
			}
		})
	}
}
