// Package ui holds the terminal presentation for the interactive loop.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)

	// PromptStyle renders the user input prompt.
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

	// ReplyStyle renders the assistant's conversational reply.
	ReplyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	// WarnStyle renders recoverable per-turn warnings.
	WarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// ErrorStyle renders turn-aborting failures.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// Banner renders the startup header with the active model and endpoint.
func Banner(model, baseURL string) string {
	rule := ruleStyle.Render(strings.Repeat("=", 50))
	title := bannerStyle.Render("  TraceLog 拾迹 ✦ 个人成长 AI 伴侣")
	info := hintStyle.Render(fmt.Sprintf("模型: %s  |  Base URL: %s", model, baseURL))
	return strings.Join([]string{rule, title, rule, info}, "\n")
}

// Thinking is shown while a turn is being processed.
func Thinking() string {
	return hintStyle.Render("[TraceLog 正在思考...]")
}

// Farewell is shown when the interactive loop exits.
func Farewell() string {
	return bannerStyle.Render("再见！")
}
