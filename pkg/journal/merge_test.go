package journal

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mergeTime = time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC)

func TestMergeKeyedUpsertIsIdempotent(t *testing.T) {
	p := NewProfile(mergeTime)

	ex := &Extraction{
		Mood:    "平静",
		Summary: "练了会儿吉他",
		Skills:  []Skill{{Name: "吉他", Proficiency: "刚入门"}},
	}
	Merge(p, ex, mergeTime)
	Merge(p, ex, mergeTime)

	require.Len(t, p.Skills, 1)
	assert.Equal(t, "吉他", p.Skills[0].Name)
	assert.Equal(t, "刚入门", p.Skills[0].Proficiency)
	assert.Equal(t, 2, p.Meta.EntryCount)
}

func TestMergeKeyNormalization(t *testing.T) {
	p := NewProfile(mergeTime)

	Merge(p, &Extraction{Mood: "好", Summary: "s", Skills: []Skill{{Name: "Guitar", Proficiency: "beginner"}}}, mergeTime)
	Merge(p, &Extraction{Mood: "好", Summary: "s", Skills: []Skill{{Name: "  guitar ", Proficiency: "practicing"}}}, mergeTime)

	require.Len(t, p.Skills, 1)
	// Incoming values win on conflict, including the key field itself.
	assert.Equal(t, "  guitar ", p.Skills[0].Name)
	assert.Equal(t, "practicing", p.Skills[0].Proficiency)
}

func TestMergeExistingFieldsSurvive(t *testing.T) {
	p := NewProfile(mergeTime)

	Merge(p, &Extraction{Mood: "好", Summary: "s", Skills: []Skill{{Name: "吉他", Proficiency: "刚入门", Notes: "买了新琴"}}}, mergeTime)
	Merge(p, &Extraction{Mood: "好", Summary: "s", Skills: []Skill{{Name: "吉他", Proficiency: "练习中"}}}, mergeTime)

	require.Len(t, p.Skills, 1)
	assert.Equal(t, "练习中", p.Skills[0].Proficiency)
	assert.Equal(t, "买了新琴", p.Skills[0].Notes, "fields absent from the incoming record survive")
}

func TestMergePreservesOrder(t *testing.T) {
	p := NewProfile(mergeTime)
	p.People = []Person{
		{Name: "小明", Relation: "朋友"},
		{Name: "小红", Relation: "同学"},
		{Name: "老师", Relation: "导师"},
	}

	Merge(p, &Extraction{
		Mood:    "好",
		Summary: "s",
		People: []Person{
			{Name: "小红", Notes: "一起吃饭"},
			{Name: "阿姨", Relation: "邻居"},
		},
	}, mergeTime)

	require.Len(t, p.People, 4)
	assert.Equal(t, "小明", p.People[0].Name)
	assert.Equal(t, "小红", p.People[1].Name, "updated record keeps its position")
	assert.Equal(t, "一起吃饭", p.People[1].Notes)
	assert.Equal(t, "同学", p.People[1].Relation)
	assert.Equal(t, "老师", p.People[2].Name)
	assert.Equal(t, "阿姨", p.People[3].Name, "new record is appended at the end")
}

func TestMergeDuplicateKeysWithinOneBatch(t *testing.T) {
	p := NewProfile(mergeTime)

	Merge(p, &Extraction{
		Mood:    "好",
		Summary: "s",
		Hobbies: []Hobby{
			{Name: "跑步", Notes: "早上"},
			{Name: "跑步", Notes: "江边"},
		},
	}, mergeTime)

	require.Len(t, p.Hobbies, 1, "a keyed category never holds duplicate keys after a merge")
	assert.Equal(t, "江边", p.Hobbies[0].Notes)
}

func TestMergeAppendOnlyCategories(t *testing.T) {
	p := NewProfile(mergeTime)

	ex := &Extraction{
		Mood:    "好",
		Summary: "s",
		Food:    []FoodItem{{Name: "拉面", Notes: "好吃"}},
		Ideas:   []Idea{{Content: "写个小工具"}},
	}
	Merge(p, ex, mergeTime)
	Merge(p, ex, mergeTime)

	assert.Len(t, p.Food, 2, "append-only categories never deduplicate")
	assert.Len(t, p.Ideas, 2)
}

func TestMergeAbsentFieldsUntouched(t *testing.T) {
	p := NewProfile(mergeTime)
	p.Skills = []Skill{{Name: "吉他"}}
	p.Food = []FoodItem{{Name: "拉面"}}

	Merge(p, &Extraction{Mood: "好", Summary: "s"}, mergeTime)

	assert.Len(t, p.Skills, 1)
	assert.Len(t, p.Food, 1)
}

func TestMergeDiarySummaryBounded(t *testing.T) {
	p := NewProfile(mergeTime)

	for i := 0; i < 60; i++ {
		Merge(p, &Extraction{Mood: "平静", Summary: fmt.Sprintf("第%d天", i)}, mergeTime.AddDate(0, 0, i))
	}

	require.Len(t, p.DiarySummaries, DiaryLimit)
	assert.Equal(t, "第10天", p.DiarySummaries[0].Summary, "oldest entries are evicted first")
	assert.Equal(t, "第59天", p.DiarySummaries[DiaryLimit-1].Summary)
	assert.Equal(t, 60, p.Meta.EntryCount)
}

func TestMergeAdvancesMeta(t *testing.T) {
	p := NewProfile(mergeTime)

	later := mergeTime.AddDate(0, 0, 3)
	Merge(p, &Extraction{Mood: "好", Summary: "s"}, later)

	assert.Equal(t, 1, p.Meta.EntryCount)
	assert.Equal(t, later.Format(DateLayout), p.Meta.LastUpdated)
	assert.Equal(t, mergeTime.Format(DateLayout), p.Meta.CreatedAt)
}

func TestMergeDoesNotTouchPortraitOrTodos(t *testing.T) {
	p := NewProfile(mergeTime)
	p.Portrait = "你是一个爱弹吉他的人。"
	p.Todos = []Todo{{ID: "20240310-001", Task: "修灯"}}

	Merge(p, &Extraction{Mood: "好", Summary: "s", TodoUpserts: []Todo{{Task: "买琴弦"}}}, mergeTime)

	assert.Equal(t, "你是一个爱弹吉他的人。", p.Portrait)
	assert.Len(t, p.Todos, 1, "todos only change through Reconcile")
}
