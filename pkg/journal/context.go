package journal

import (
	"fmt"
	"strings"
)

const (
	// pendingTodoWindow bounds the pending-todo section of the digest.
	pendingTodoWindow = 8

	// recentDiaryWindow bounds the recent-diary section of the digest.
	recentDiaryWindow = 5

	// unscheduled is shown for pending todos with no date.
	unscheduled = "待定"
)

// joinItems renders each item with fmt and joins the non-empty results with
// the Chinese enumeration comma. Returns "" when nothing rendered.
func joinItems[T any](items []T, format func(T) string) string {
	var parts []string
	for _, it := range items {
		if s := format(it); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "、")
}

// BuildContextSummary renders the profile into the bounded digest injected
// into the next extraction prompt. It is read-only and deterministic.
//
// Before the first merged entry it returns "" so an empty boilerplate block
// never pollutes a first prompt. Otherwise sections appear in a fixed order
// and only when their data is non-empty; the order is a contract, because a
// length-limited prompt window truncates from the end.
func BuildContextSummary(p *Profile) string {
	if p.Meta.EntryCount == 0 {
		return ""
	}

	var lines []string

	if p.Portrait != "" {
		lines = append(lines, "【关于你】\n"+p.Portrait)
	}

	if s := joinItems(p.Skills, func(i Skill) string {
		if i.Name == "" {
			return ""
		}
		if i.Proficiency != "" {
			return fmt.Sprintf("%s（%s）", i.Name, i.Proficiency)
		}
		return i.Name
	}); s != "" {
		lines = append(lines, "技能："+s)
	}

	if s := joinItems(p.Hobbies, func(i Hobby) string { return i.Name }); s != "" {
		lines = append(lines, "兴趣："+s)
	}

	if s := joinItems(p.Goals, func(i Goal) string {
		if i.Goal == "" {
			return ""
		}
		return fmt.Sprintf("%s（%s）", i.Goal, i.Status)
	}); s != "" {
		lines = append(lines, "目标："+s)
	}

	pending := p.PendingTodos()
	if len(pending) > pendingTodoWindow {
		pending = pending[len(pending)-pendingTodoWindow:]
	}
	if len(pending) > 0 {
		lines = append(lines, "近期待办："+joinItems(pending, func(t Todo) string {
			date := t.Date
			if date == "" {
				date = unscheduled
			}
			return fmt.Sprintf("%s（%s）", t.Task, date)
		}))
	}

	if s := joinItems(p.People, func(i Person) string {
		if i.Name == "" {
			return ""
		}
		return fmt.Sprintf("%s（%s）", i.Name, i.Relation)
	}); s != "" {
		lines = append(lines, "身边的人："+s)
	}

	if s := joinItems(p.Places, func(i Place) string {
		if i.Name == "" {
			return ""
		}
		return fmt.Sprintf("%s（%s）", i.Name, i.Type)
	}); s != "" {
		lines = append(lines, "常去地点："+s)
	}

	recent := p.DiarySummaries
	if len(recent) > recentDiaryWindow {
		recent = recent[len(recent)-recentDiaryWindow:]
	}
	if len(recent) > 0 {
		var entries []string
		for _, e := range recent {
			entries = append(entries, fmt.Sprintf("%s [%s] %s", e.Date, e.Mood, e.Summary))
		}
		lines = append(lines, "近期日记：\n  "+strings.Join(entries, "\n  "))
	}

	return strings.Join(lines, "\n")
}
