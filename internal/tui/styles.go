package tui

import (
	"reel/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles derived from the configured theme.
type Styles struct {
	App      lipgloss.Style
	Card     lipgloss.Style
	Title    lipgloss.Style
	Author   lipgloss.Style
	Caption  lipgloss.Style
	Music    lipgloss.Style
	Counter  lipgloss.Style
	Liked    lipgloss.Style
	Saved    lipgloss.Style
	Pending  lipgloss.Style
	Error    lipgloss.Style
	Subtle   lipgloss.Style
	Toast    lipgloss.Style
	ErrToast lipgloss.Style
	Help     lipgloss.Style
	Heart    lipgloss.Style
}

// NewStyles builds styles from the theme colors.
func NewStyles(cfg *config.Config) Styles {
	primary := lipgloss.Color(cfg.Theme.Primary)
	accent := lipgloss.Color(cfg.Theme.Accent)
	errColor := lipgloss.Color(cfg.Theme.Error)
	subtle := lipgloss.Color(cfg.Theme.Subtle)
	border := lipgloss.Color(cfg.Theme.Border)

	return Styles{
		App: lipgloss.NewStyle().Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 2),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Author:   lipgloss.NewStyle().Bold(true),
		Caption:  lipgloss.NewStyle(),
		Music:    lipgloss.NewStyle().Italic(true).Foreground(subtle),
		Counter:  lipgloss.NewStyle().Foreground(subtle),
		Liked:    lipgloss.NewStyle().Bold(true).Foreground(errColor),
		Saved:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Pending:  lipgloss.NewStyle().Italic(true).Foreground(subtle),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(errColor),
		Subtle:   lipgloss.NewStyle().Foreground(subtle),
		Toast:    lipgloss.NewStyle().Foreground(accent),
		ErrToast: lipgloss.NewStyle().Foreground(errColor),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#5A9")),
		Heart:    lipgloss.NewStyle().Bold(true).Foreground(errColor),
	}
}
