package journal

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// PortraitMeta is the YAML front-matter of the portrait document.
type PortraitMeta struct {
	UpdatedAt string `yaml:"updated_at"`
	Entries   int    `yaml:"entries"`
}

// PortraitDoc is the narrative portrait as persisted: front-matter plus the
// free-form biography text. The portrait is regenerated wholesale by the
// portrait collaborator, never merged incrementally.
type PortraitDoc struct {
	Meta    PortraitMeta
	Content string
}

// ParsePortrait deserializes a raw portrait document.
func ParsePortrait(raw []byte) (*PortraitDoc, error) {
	s := string(raw)
	if !strings.HasPrefix(s, frontMatterDelimiter) {
		return nil, fmt.Errorf("journal: portrait missing front-matter delimiter")
	}
	rest := s[len(frontMatterDelimiter):]
	idx := strings.Index(rest, "\n"+frontMatterDelimiter)
	if idx == -1 {
		return nil, fmt.Errorf("journal: portrait has unclosed front-matter block")
	}
	yamlBlock := rest[:idx]
	bodyRaw := rest[idx+len("\n"+frontMatterDelimiter):]
	body := bodyRaw
	if strings.HasPrefix(bodyRaw, "\n\n") {
		body = bodyRaw[2:]
	} else if strings.HasPrefix(bodyRaw, "\n") {
		body = bodyRaw[1:]
	}

	var meta PortraitMeta
	if err := yaml.Unmarshal([]byte(yamlBlock), &meta); err != nil {
		return nil, fmt.Errorf("journal: portrait front-matter parse error: %w", err)
	}
	return &PortraitDoc{Meta: meta, Content: body}, nil
}

// SerializePortrait renders a portrait document to its on-disk form.
func SerializePortrait(doc *PortraitDoc) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(&doc.Meta)
	if err != nil {
		return nil, fmt.Errorf("journal: portrait serialize error: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(frontMatterDelimiter + "\n")
	sb.Write(yamlBytes)
	sb.WriteString(frontMatterDelimiter + "\n\n")
	sb.WriteString(doc.Content)
	return []byte(sb.String()), nil
}
