// Package tui é a interface de terminal do diretório (bubbletea + lipgloss).
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#2563EB")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#D1D5DB")
	colorPill    = lipgloss.Color("#DBEAFE")
	colorError   = lipgloss.Color("#DC2626")
	colorFocus   = lipgloss.Color("#F59E0B")
	colorWhite   = lipgloss.Color("#FFFFFF")
)

type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Card       lipgloss.Style
	Skeleton   lipgloss.Style
	Badge      lipgloss.Style
	Name       lipgloss.Style
	Pill       lipgloss.Style
	Muted      lipgloss.Style
	Link       lipgloss.Style
	Field      lipgloss.Style
	FieldFocus lipgloss.Style
	Label      lipgloss.Style
	Error      lipgloss.Style
	PageActive lipgloss.Style
	Page       lipgloss.Style
	Disabled   lipgloss.Style
	Help       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Subtitle:   lipgloss.NewStyle().Foreground(colorMuted),
		Card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		Skeleton:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Foreground(colorBorder).Padding(0, 1),
		Badge:      lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(colorPrimary).Padding(0, 1),
		Name:       lipgloss.NewStyle().Bold(true),
		Pill:       lipgloss.NewStyle().Foreground(colorPrimary).Background(colorPill).Padding(0, 1),
		Muted:      lipgloss.NewStyle().Foreground(colorMuted),
		Link:       lipgloss.NewStyle().Foreground(colorPrimary).Underline(true),
		Field:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorBorder).Padding(0, 1),
		FieldFocus: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorFocus).Padding(0, 1),
		Label:      lipgloss.NewStyle().Foreground(colorMuted),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(colorError),
		PageActive: lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(colorPrimary).Padding(0, 1),
		Page:       lipgloss.NewStyle().Padding(0, 1),
		Disabled:   lipgloss.NewStyle().Foreground(colorBorder).Padding(0, 1),
		Help:       lipgloss.NewStyle().Foreground(colorMuted),
	}
}
