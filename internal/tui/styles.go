package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the picker.
var Colors = struct {
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
}{
	Primary:       lipgloss.Color("#6C5CE7"), // Purple
	Muted:         lipgloss.Color("#636E72"), // Gray
	Error:         lipgloss.Color("#D63031"), // Red
	Success:       lipgloss.Color("#00B894"), // Green
	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
}

// Styles holds the lipgloss styles used by the view.
type Styles struct {
	Header   lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Current  lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary).MarginBottom(1),
		Item:     lipgloss.NewStyle().Foreground(Colors.TitleNormal).PaddingLeft(2),
		Selected: lipgloss.NewStyle().Foreground(Colors.TitleSelected).Bold(true).PaddingLeft(0),
		Current:  lipgloss.NewStyle().Foreground(Colors.Success),
		Muted:    lipgloss.NewStyle().Foreground(Colors.Muted),
		Error:    lipgloss.NewStyle().Foreground(Colors.Error),
	}
}
