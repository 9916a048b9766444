package output

import "github.com/charmbracelet/lipgloss"

// Styles carries the lipgloss styles used by text renderings.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Hint    lipgloss.Style

	// StatusSuccess and StatusFailed carry their glyph, render them
	// with String().
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

// NewStyles builds the style set. Without color every style is a
// no-op, so rendered text stays byte-identical to its input.
func NewStyles(color bool) Styles {
	plain := lipgloss.NewStyle()
	if !color {
		return Styles{
			Header1:       plain,
			Header2:       plain,
			Bold:          plain,
			Muted:         plain,
			Success:       plain,
			Warning:       plain,
			Error:         plain,
			Info:          plain,
			Hint:          plain,
			StatusSuccess: plain.SetString("✓"),
			StatusFailed:  plain.SetString("✗"),
		}
	}
	return Styles{
		Header1:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		Header2:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		Bold:          lipgloss.NewStyle().Bold(true),
		Muted:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Success:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Warning:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Info:          lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Hint:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusSuccess: lipgloss.NewStyle().SetString("✓").Foreground(lipgloss.Color("46")),
		StatusFailed:  lipgloss.NewStyle().SetString("✗").Foreground(lipgloss.Color("196")),
	}
}

// SeverityStyle maps a severity name onto its display style.
func (s Styles) SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "error":
		return s.Error
	case "warning":
		return s.Warning
	case "info":
		return s.Info
	case "hint":
		return s.Hint
	}
	return s.Bold
}
