package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bobinette/knowledgehub"
)

var categoryColors = map[knowledgehub.Category]lipgloss.Color{
	knowledgehub.CategoryTech:     lipgloss.Color("#6366f1"),
	knowledgehub.CategoryAI:       lipgloss.Color("#a855f7"),
	knowledgehub.CategoryBackend:  lipgloss.Color("#10b981"),
	knowledgehub.CategoryFrontend: lipgloss.Color("#f59e0b"),
	knowledgehub.CategoryDevOps:   lipgloss.Color("#06b6d4"),
	knowledgehub.CategoryDatabase: lipgloss.Color("#ef4444"),
	knowledgehub.CategorySecurity: lipgloss.Color("#f43f5e"),
	knowledgehub.CategoryMobile:   lipgloss.Color("#84cc16"),
	knowledgehub.CategoryCloud:    lipgloss.Color("#3b82f6"),
	knowledgehub.CategoryOther:    lipgloss.Color("#94a3b8"),
}

type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Tag     lipgloss.Style
	AIBadge lipgloss.Style
	Summary lipgloss.Style
	Card    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	color bool
}

// NewStyles returns the terminal styles. Without color every style renders
// its text as is.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Title:   plain,
			Muted:   plain,
			Tag:     plain,
			AIBadge: plain,
			Summary: plain.PaddingLeft(2),
			Card:    plain,
			Success: plain,
			Error:   plain,
			Info:    plain,
		}
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f8fafc")).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8")),

		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#38bdf8")),

		AIBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a855f7")).
			Bold(true),

		Summary: lipgloss.NewStyle().
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#a855f7")),

		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334155")),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10b981")).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444")).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#06b6d4")),

		color: true,
	}
}

// Badge renders the category label.
func (s Styles) Badge(c knowledgehub.Category) string {
	label := "[" + string(c) + "]"
	if !s.color {
		return label
	}

	color, ok := categoryColors[c]
	if !ok {
		color = categoryColors[knowledgehub.CategoryOther]
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(label)
}
