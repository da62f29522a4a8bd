package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains all the styles used in the session screen
type Styles struct {
	Title       lipgloss.Style
	Running     lipgloss.Style
	PausedBadge lipgloss.Style
	Elapsed     lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Support     lipgloss.Style
	Finish      lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the default session screen styles
func DefaultStyles() Styles {
	primary := lipgloss.Color("99")     // Purple
	accent := lipgloss.Color("212")     // Pink
	muted := lipgloss.Color("240")      // Gray
	success := lipgloss.Color("82")     // Green
	warning := lipgloss.Color("214")    // Orange
	errorColor := lipgloss.Color("196") // Red

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(primary),
		Running:     lipgloss.NewStyle().Bold(true).Foreground(success),
		PausedBadge: lipgloss.NewStyle().Bold(true).Foreground(warning),
		Elapsed:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Label:       lipgloss.NewStyle().Foreground(muted),
		Value:       lipgloss.NewStyle(),
		Support:     lipgloss.NewStyle().Italic(true).Foreground(primary),
		Finish:      lipgloss.NewStyle().Bold(true).Foreground(success),
		Error:       lipgloss.NewStyle().Foreground(errorColor),
		Help:        lipgloss.NewStyle().Foreground(muted),
	}
}
