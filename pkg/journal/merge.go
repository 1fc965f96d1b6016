package journal

import (
	"strings"
	"time"
)

// normalizeKey produces the identity form of a natural key: trimmed and
// case-folded. Records with an empty normalized key never match anything
// and are always appended.
func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// upsertByKey folds incoming records into existing ones by normalized
// natural key. A key match merges the incoming record into the existing one
// in place (position preserved); anything else is appended at the end.
// Keys of appended records join the index, so a keyed category never holds
// two records with the same normalized key after a merge.
func upsertByKey[T any](existing []T, incoming []T, key func(T) string, merge func(*T, T)) []T {
	index := make(map[string]int, len(existing))
	for i, rec := range existing {
		if k := normalizeKey(key(rec)); k != "" {
			index[k] = i
		}
	}
	for _, rec := range incoming {
		k := normalizeKey(key(rec))
		if k != "" {
			if i, ok := index[k]; ok {
				merge(&existing[i], rec)
				continue
			}
		}
		existing = append(existing, rec)
		if k != "" {
			index[k] = len(existing) - 1
		}
	}
	return existing
}

// overwrite replaces dst with src unless src is empty. Keyed-merge field
// semantics: incoming values win, absent incoming fields leave the
// existing value intact.
func overwrite(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeSkill(dst *Skill, src Skill) {
	overwrite(&dst.Name, src.Name)
	overwrite(&dst.Proficiency, src.Proficiency)
	overwrite(&dst.Notes, src.Notes)
}

func mergeHobby(dst *Hobby, src Hobby) {
	overwrite(&dst.Name, src.Name)
	overwrite(&dst.Notes, src.Notes)
}

func mergeGoal(dst *Goal, src Goal) {
	overwrite(&dst.Goal, src.Goal)
	overwrite(&dst.Deadline, src.Deadline)
	overwrite(&dst.Status, src.Status)
	overwrite(&dst.Notes, src.Notes)
}

func mergePerson(dst *Person, src Person) {
	overwrite(&dst.Name, src.Name)
	overwrite(&dst.Relation, src.Relation)
	overwrite(&dst.Notes, src.Notes)
}

func mergePlace(dst *Place, src Place) {
	overwrite(&dst.Name, src.Name)
	overwrite(&dst.Type, src.Type)
	overwrite(&dst.Notes, src.Notes)
}

func mergeMedia(dst *MediaItem, src MediaItem) {
	overwrite(&dst.Title, src.Title)
	overwrite(&dst.Type, src.Type)
	overwrite(&dst.Status, src.Status)
	overwrite(&dst.Notes, src.Notes)
}

// Merge folds one extraction into the profile: keyed categories upsert by
// natural key, append-only categories extend verbatim, one diary summary is
// appended (evicting past DiaryLimit), and meta is advanced by exactly one
// entry. The portrait and todos are not touched here — the portrait is
// regenerated by a separate collaborator call, todos go through Reconcile.
func Merge(p *Profile, ex *Extraction, now time.Time) {
	if ex.Skills != nil {
		p.Skills = upsertByKey(p.Skills, ex.Skills, func(s Skill) string { return s.Name }, mergeSkill)
	}
	if ex.Hobbies != nil {
		p.Hobbies = upsertByKey(p.Hobbies, ex.Hobbies, func(h Hobby) string { return h.Name }, mergeHobby)
	}
	if ex.Goals != nil {
		p.Goals = upsertByKey(p.Goals, ex.Goals, func(g Goal) string { return g.Goal }, mergeGoal)
	}
	if ex.People != nil {
		p.People = upsertByKey(p.People, ex.People, func(pe Person) string { return pe.Name }, mergePerson)
	}
	if ex.Places != nil {
		p.Places = upsertByKey(p.Places, ex.Places, func(pl Place) string { return pl.Name }, mergePlace)
	}
	if ex.Media != nil {
		p.Media = upsertByKey(p.Media, ex.Media, func(m MediaItem) string { return m.Title }, mergeMedia)
	}

	p.Food = append(p.Food, ex.Food...)
	p.Health = append(p.Health, ex.Health...)
	p.Ideas = append(p.Ideas, ex.Ideas...)
	p.Purchases = append(p.Purchases, ex.Purchases...)
	p.Emotions = append(p.Emotions, ex.Emotions...)

	p.DiarySummaries = append(p.DiarySummaries, DiarySummary{
		Date:    now.Format(DateLayout),
		Mood:    ex.Mood,
		Summary: ex.Summary,
	})
	if len(p.DiarySummaries) > DiaryLimit {
		p.DiarySummaries = p.DiarySummaries[len(p.DiarySummaries)-DiaryLimit:]
	}

	p.Meta.LastUpdated = now.Format(DateLayout)
	p.Meta.EntryCount++
}
