package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpggio/swipecount/internal/engine"
)

// Screen rows. Each section renders to exactly one line so pointer rows
// can be mapped back to sections.
const (
	tabsRow = iota
	_
	nameRow
	_
	countRow
	labelRow
	progressRow
	feedbackRow
	_
	footerRow
)

const progressWidth = 30

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#8c8fa1", Dark: "#6c7086"}
	colorUp     = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	colorDown   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}

	activeTabStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	nameStyle      = lipgloss.NewStyle().Bold(true)
	countStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle     = lipgloss.NewStyle().Foreground(colorMuted).Underline(true)
	emptyBarStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	statusStyle    = lipgloss.NewStyle().Foreground(colorDown)
	formTitleStyle = lipgloss.NewStyle().Bold(true)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	v := m.engine.View()
	active := v.Active()
	m.syncBindings(v)

	lines := make([]string, footerRow+1)
	lines[tabsRow] = m.clip(renderTabs(v))
	lines[nameRow] = m.clip(nameStyle.Render(displayName(active, v.ActiveIndex)))
	lines[countRow] = countStyle.Render(fmt.Sprintf("%d", active.Count))
	lines[labelRow] = labelStyle.Render(fmt.Sprintf("%d / %d", active.Count, active.TargetValue))
	lines[progressRow] = renderProgress(active)
	lines[feedbackRow] = renderFeedback(v.Feedback)
	if m.status != "" {
		lines[feedbackRow] = statusStyle.Render(m.status)
	}

	if m.form == nil {
		lines[footerRow] = m.help.View(m.keys)
		return strings.Join(lines, "\n")
	}

	lines[footerRow] = m.help.View(formKeyMap{m.keys})
	lines = append(lines, "", formTitleStyle.Render("Edit counter"))
	for _, in := range m.form.inputs {
		lines = append(lines, in.View())
	}
	if m.form.err != "" {
		lines = append(lines, statusStyle.Render(m.form.err))
	}
	return strings.Join(lines, "\n")
}

func (m Model) clip(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(s)
}

func renderTabs(v engine.View) string {
	parts := make([]string, 0, len(v.Counters))
	for i, c := range v.Counters {
		label := fmt.Sprintf(" %s ", displayName(c, i))
		if c.Active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return strings.Join(parts, "")
}

func displayName(c engine.CounterView, index int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("Counter %d", index+1)
}

func renderProgress(c engine.CounterView) string {
	filled := int(math.Round(c.Progress * progressWidth))
	bar := lipgloss.NewStyle().Foreground(colorAccent)
	if c.Color != "" {
		bar = bar.Foreground(lipgloss.Color(c.Color))
	}
	return bar.Render(strings.Repeat("█", filled)) +
		emptyBarStyle.Render(strings.Repeat("░", progressWidth-filled)) +
		fmt.Sprintf(" %3.0f%%", c.Progress*100)
}

func renderFeedback(fb *engine.FeedbackView) string {
	if fb == nil {
		return ""
	}
	arrow, sign, style := "▲", "+", lipgloss.NewStyle().Foreground(colorUp)
	if fb.Direction == "down" {
		arrow, sign, style = "▼", "-", lipgloss.NewStyle().Foreground(colorDown)
	}
	if fb.Committed {
		style = style.Bold(true)
	} else {
		style = style.Faint(true)
	}
	return style.Render(fmt.Sprintf("%s %s%d", arrow, sign, fb.Magnitude))
}
