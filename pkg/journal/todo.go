package journal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// todoIDDayLayout is the date prefix of generated todo ids.
const todoIDDayLayout = "20060102"

// NextTodoID returns the next free id for the given day: the day's maximum
// existing sequence plus one, starting at 001. Sequences are scoped per
// calendar day and never reused, even after deletions.
func NextTodoID(existing []Todo, day time.Time) string {
	prefix := day.Format(todoIDDayLayout) + "-"
	maxSeq := 0
	for _, t := range existing {
		rest, ok := strings.CutPrefix(t.ID, prefix)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("%s%03d", prefix, maxSeq+1)
}

func mergeTodo(dst *Todo, src Todo) {
	overwrite(&dst.Task, src.Task)
	overwrite(&dst.Date, src.Date)
	overwrite(&dst.Start, src.Start)
	overwrite(&dst.End, src.End)
	overwrite(&dst.Status, src.Status)
	overwrite(&dst.Notes, src.Notes)
}

// Reconcile applies an upsert/delete pair to the todo list.
//
// Deletes whose id is not currently present are dropped, not applied: the
// upstream extractor can hallucinate or misattribute ids, and a todo must
// never be removed on the strength of an id that storage has never issued.
// The dropped ids are returned so the caller can surface a warning.
//
// Upserts carrying a known id merge field-by-field into that record in
// place; upserts with no id, or an id that matches nothing, become new
// todos with freshly generated ids. The result is deterministic given the
// same inputs, and deleting an already-absent id is a no-op.
func Reconcile(existing []Todo, upserts []Todo, deletes []string, now time.Time) (todos []Todo, unknownDeletes []string) {
	present := make(map[string]bool, len(existing))
	for _, t := range existing {
		present[t.ID] = true
	}

	remove := make(map[string]bool, len(deletes))
	for _, id := range deletes {
		if present[id] {
			remove[id] = true
		} else {
			unknownDeletes = append(unknownDeletes, id)
		}
	}

	todos = make([]Todo, 0, len(existing))
	index := make(map[string]int, len(existing))
	for _, t := range existing {
		if remove[t.ID] {
			continue
		}
		index[t.ID] = len(todos)
		todos = append(todos, t)
	}

	// Sequence numbers are never reused: id generation considers every id
	// ever seen this call, including the ones just removed.
	seen := append([]Todo(nil), existing...)
	for _, u := range upserts {
		if u.ID != "" {
			if i, ok := index[u.ID]; ok {
				mergeTodo(&todos[i], u)
				continue
			}
		}
		u.ID = NextTodoID(seen, now)
		seen = append(seen, u)
		index[u.ID] = len(todos)
		todos = append(todos, u)
	}
	return todos, unknownDeletes
}
