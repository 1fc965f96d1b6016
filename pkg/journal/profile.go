package journal

import "time"

const (
	// DiaryLimit caps diary_summaries; oldest entries are evicted first.
	DiaryLimit = 50

	// DateLayout is the ISO date format used for all persisted dates.
	DateLayout = "2006-01-02"

	// StatusDone marks a todo as completed and excludes it from the
	// pending-todo section of the context digest.
	StatusDone = "已完成"
)

// Meta tracks profile-level bookkeeping.
type Meta struct {
	CreatedAt   string `json:"created_at"`
	LastUpdated string `json:"last_updated"`
	EntryCount  int    `json:"entry_count"`
}

// Skill is a keyed record; Name is the identity key.
type Skill struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Hobby is a keyed record; Name is the identity key.
type Hobby struct {
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// Goal is a keyed record; Goal is the identity key.
type Goal struct {
	Goal     string `json:"goal"`
	Deadline string `json:"deadline,omitempty"`
	Status   string `json:"status,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Person is a keyed record; Name is the identity key.
type Person struct {
	Name     string `json:"name"`
	Relation string `json:"relation,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Place is a keyed record; Name is the identity key.
type Place struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// MediaItem is a keyed record; Title is the identity key.
type MediaItem struct {
	Title  string `json:"title"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// FoodItem is an append-only record.
type FoodItem struct {
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// HealthItem is an append-only record.
type HealthItem struct {
	Type  string `json:"type"`
	Notes string `json:"notes,omitempty"`
}

// Idea is an append-only record.
type Idea struct {
	Content string `json:"content"`
}

// Purchase is an append-only record.
type Purchase struct {
	Item   string `json:"item"`
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// Emotion is an append-only record.
type Emotion struct {
	Trigger    string `json:"trigger,omitempty"`
	Feeling    string `json:"feeling,omitempty"`
	Reflection string `json:"reflection,omitempty"`
}

// Todo is a task record identified by a generated `<YYYYMMDD>-<NNN>` id.
type Todo struct {
	ID     string `json:"id"`
	Task   string `json:"task"`
	Date   string `json:"date,omitempty"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// DiarySummary is the per-entry digest appended on every merge.
type DiarySummary struct {
	Date    string `json:"date"`
	Mood    string `json:"mood"`
	Summary string `json:"summary"`
	Entry   string `json:"entry,omitempty"`
}

// Profile is the root aggregate of everything TraceLog remembers about the
// user. Todos and Portrait are persisted as separate documents (see
// FileStore) and therefore excluded from the profile's own JSON form.
type Profile struct {
	Meta     Meta   `json:"meta"`
	Portrait string `json:"-"`

	Skills  []Skill     `json:"skills,omitempty"`
	Hobbies []Hobby     `json:"hobbies,omitempty"`
	Goals   []Goal      `json:"goals,omitempty"`
	People  []Person    `json:"people,omitempty"`
	Places  []Place     `json:"places,omitempty"`
	Media   []MediaItem `json:"media,omitempty"`

	Food      []FoodItem   `json:"food,omitempty"`
	Health    []HealthItem `json:"health,omitempty"`
	Ideas     []Idea       `json:"ideas,omitempty"`
	Purchases []Purchase   `json:"purchases,omitempty"`
	Emotions  []Emotion    `json:"emotions,omitempty"`

	DiarySummaries []DiarySummary `json:"diary_summaries,omitempty"`

	Todos []Todo `json:"-"`
}

// NewProfile returns an empty profile initialized at the given time.
func NewProfile(now time.Time) *Profile {
	today := now.Format(DateLayout)
	return &Profile{
		Meta: Meta{
			CreatedAt:   today,
			LastUpdated: today,
			EntryCount:  0,
		},
	}
}

// PendingTodos returns the todos whose status is not StatusDone,
// preserving insertion order.
func (p *Profile) PendingTodos() []Todo {
	var pending []Todo
	for _, t := range p.Todos {
		if t.Status != StatusDone {
			pending = append(pending, t)
		}
	}
	return pending
}
