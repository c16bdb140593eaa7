package render

import "github.com/charmbracelet/lipgloss"

// Mode selects how output is decorated.
type Mode int

const (
	// Color uses terminal colours.
	Color Mode = iota
	// Mono uses bold and italic text only.
	Mono
	// Plain leaves text undecorated.
	Plain
)

var (
	colorMissing   = lipgloss.Color("#E74C3C")
	colorAmbiguous = lipgloss.Color("#9B59B6")
	colorWord      = lipgloss.Color("#3498DB")
	colorSolution  = lipgloss.Color("#2CD7C7")
	colorWarning   = lipgloss.Color("#F4D03F")
)

type styles struct {
	Missing   lipgloss.Style
	Ambiguous lipgloss.Style
	Word      lipgloss.Style
	Highlight lipgloss.Style
	Solution  lipgloss.Style
	Solved    lipgloss.Style
	Unsolved  lipgloss.Style
	Failed    lipgloss.Style
}

func stylesFor(mode Mode) styles {
	switch mode {
	case Color:
		return styles{
			Missing:   lipgloss.NewStyle().Foreground(colorMissing),
			Ambiguous: lipgloss.NewStyle().Foreground(colorAmbiguous),
			Word:      lipgloss.NewStyle().Foreground(colorWord),
			Highlight: lipgloss.NewStyle().Foreground(colorWord),
			Solution:  lipgloss.NewStyle().Foreground(colorSolution).Bold(true),
			Solved:    lipgloss.NewStyle().Foreground(colorSolution).Bold(true),
			Unsolved:  lipgloss.NewStyle().Foreground(colorWarning),
			Failed:    lipgloss.NewStyle().Foreground(colorMissing).Bold(true),
		}
	case Mono:
		return styles{
			Missing:   lipgloss.NewStyle().Bold(true),
			Ambiguous: lipgloss.NewStyle().Italic(true),
			Word:      lipgloss.NewStyle(),
			Highlight: lipgloss.NewStyle().Bold(true),
			Solution:  lipgloss.NewStyle().Bold(true),
			Solved:    lipgloss.NewStyle().Bold(true),
			Unsolved:  lipgloss.NewStyle(),
			Failed:    lipgloss.NewStyle().Bold(true),
		}
	}
	return styles{}
}
