// Package router owns the conversation with the language model: prompt
// assembly, the analysis and portrait-regeneration calls, and strict
// validation of the structured payloads that come back. Nothing here
// mutates the profile; invalid responses are rejected whole so the merge
// layer only ever sees well-formed extractions.
package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tracelog/tracelog/pkg/journal"
	"github.com/tracelog/tracelog/pkg/llm"
)

var weekdayCN = [...]string{"日", "一", "二", "三", "四", "五", "六"}

// Router drives the extraction and portrait collaborator calls.
type Router struct {
	provider llm.Provider

	// now is injectable for tests.
	now func() time.Time
}

// New creates a router on top of the given provider.
func New(provider llm.Provider) *Router {
	return &Router{provider: provider, now: time.Now}
}

// Analyze sends one diary entry to the model together with the current
// context digest and todo list, and returns the validated response. Any
// transport failure or malformed payload aborts the turn: the error is
// returned and nothing is merged.
func (r *Router) Analyze(ctx context.Context, entry, contextDigest string, todos []journal.Todo) (*Response, error) {
	system := buildSystemPrompt(contextDigest, todos, r.now())

	raw, err := r.provider.Complete(ctx,
		[]llm.Message{
			llm.SystemMessage(system),
			llm.UserMessage(entry),
		},
		llm.WithJSONObject(),
	)
	if err != nil {
		return nil, fmt.Errorf("router: analysis call failed: %w", err)
	}

	return ParseResponse(raw)
}

// RegeneratePortrait asks the model to rewrite the narrative portrait from
// the already-merged profile's compact categories. The prior portrait is
// supplied for reference only; on failure the caller keeps it unchanged.
func (r *Router) RegeneratePortrait(ctx context.Context, p *journal.Profile) (string, error) {
	compact, err := compactJSON(map[string]any{
		"skills":  p.Skills,
		"hobbies": p.Hobbies,
		"goals":   p.Goals,
		"people":  p.People,
		"places":  p.Places,
		"ideas":   p.Ideas,
	})
	if err != nil {
		return "", fmt.Errorf("router: encode portrait payload: %w", err)
	}

	old := p.Portrait
	if old == "" {
		old = "（无）"
	}
	user := fmt.Sprintf("旧的简介（仅供参考，不得延续其中任何推断或模糊表述）：%s\n\n结构化数据：%s", old, compact)

	text, err := r.provider.Complete(ctx, []llm.Message{
		llm.SystemMessage(portraitPrompt),
		llm.UserMessage(user),
	})
	if err != nil {
		return "", fmt.Errorf("router: portrait call failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// buildSystemPrompt fills the analysis prompt template with the user's
// history digest, the current todo list (ids included, so updates and
// deletes can reference them) and the current local time.
func buildSystemPrompt(contextDigest string, todos []journal.Todo, now time.Time) string {
	contextBlock := ""
	if strings.TrimSpace(contextDigest) != "" {
		contextBlock = "## 用户历史画像\n" + contextDigest + "\n\n"
	}

	currentDatetime := fmt.Sprintf("现在是 %d 年 %02d 月 %02d 日（周%s）%02d:%02d",
		now.Year(), now.Month(), now.Day(), weekdayCN[now.Weekday()], now.Hour(), now.Minute())

	prompt := strings.Replace(systemPromptTemplate, "{context}", contextBlock, 1)
	prompt = strings.Replace(prompt, "{todos}", renderTodoList(todos), 1)
	return strings.Replace(prompt, "{current_datetime}", currentDatetime, 1)
}

// renderTodoList lists the current todos one per line as "id task（status，date）".
func renderTodoList(todos []journal.Todo) string {
	if len(todos) == 0 {
		return "（无）"
	}
	var sb strings.Builder
	for i, t := range todos {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("- ")
		sb.WriteString(t.ID)
		sb.WriteByte(' ')
		sb.WriteString(t.Task)
		var attrs []string
		if t.Status != "" {
			attrs = append(attrs, t.Status)
		}
		if t.Date != "" {
			attrs = append(attrs, t.Date)
		}
		if len(attrs) > 0 {
			sb.WriteString("（" + strings.Join(attrs, "，") + "）")
		}
	}
	return sb.String()
}

// compactJSON marshals without HTML escaping so CJK text stays readable in
// the prompt.
func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
