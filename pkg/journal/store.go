package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	profileFile  = "profile.json"
	todosFile    = "todos.json"
	portraitFile = "portrait.md"
)

// Store is the persistence boundary for the profile aggregate. It performs
// no validation of merge invariants; it is a pure serialization layer.
type Store interface {
	// Load returns the persisted profile, or a freshly initialized empty
	// one when no prior state exists. Absence of state is never an error.
	Load() (*Profile, error)

	// Save persists the full profile durably. A crash mid-save never
	// leaves a corrupt document readable on the next Load.
	Save(p *Profile) error
}

// FileStore persists the profile under a single directory as one document
// per concern: profile.json (structured memory), todos.json (the todo list)
// and portrait.md (the narrative portrait with YAML front-matter).
type FileStore struct {
	dir string

	// now is injectable for tests.
	now func() time.Time
}

// NewFileStore creates the data directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("journal: init data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the data directory this store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) Load() (*Profile, error) {
	p := NewProfile(s.now())

	b, err := os.ReadFile(filepath.Join(s.dir, profileFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run: empty profile.
	case err != nil:
		return nil, fmt.Errorf("journal: read profile: %w", err)
	default:
		if err := json.Unmarshal(b, p); err != nil {
			return nil, fmt.Errorf("journal: decode profile: %w", err)
		}
	}

	b, err = os.ReadFile(filepath.Join(s.dir, todosFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("journal: read todos: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal(b, &p.Todos); err != nil {
			return nil, fmt.Errorf("journal: decode todos: %w", err)
		}
	}

	b, err = os.ReadFile(filepath.Join(s.dir, portraitFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("journal: read portrait: %w", err)
	}
	if err == nil {
		doc, err := ParsePortrait(b)
		if err != nil {
			return nil, fmt.Errorf("journal: decode portrait: %w", err)
		}
		p.Portrait = doc.Content
	}

	return p, nil
}

func (s *FileStore) Save(p *Profile) error {
	b, err := marshalJSON(p)
	if err != nil {
		return fmt.Errorf("journal: encode profile: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.dir, profileFile), b, 0o600); err != nil {
		return err
	}

	todos := p.Todos
	if todos == nil {
		todos = []Todo{}
	}
	b, err = marshalJSON(todos)
	if err != nil {
		return fmt.Errorf("journal: encode todos: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.dir, todosFile), b, 0o600); err != nil {
		return err
	}

	doc := &PortraitDoc{
		Meta: PortraitMeta{
			UpdatedAt: p.Meta.LastUpdated,
			Entries:   p.Meta.EntryCount,
		},
		Content: p.Portrait,
	}
	b, err = SerializePortrait(doc)
	if err != nil {
		return fmt.Errorf("journal: encode portrait: %w", err)
	}
	return writeFileAtomic(filepath.Join(s.dir, portraitFile), b, 0o600)
}

// marshalJSON indents like the on-disk format expects and keeps CJK text
// readable by not escaping HTML-significant runes.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data to a temporary file in the target directory,
// fsyncs it and renames it into place, so a crash mid-write can never leave
// a partially written document at path. The directory sync afterwards is
// best-effort.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("journal: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("journal: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("journal: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("journal: close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("journal: chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("journal: atomic rename %s: %w", path, err)
	}

	if f, err := os.Open(dir); err == nil {
		_ = f.Sync()
		_ = f.Close()
	}
	return nil
}
