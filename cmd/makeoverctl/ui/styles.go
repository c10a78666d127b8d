package ui

import "github.com/charmbracelet/lipgloss"

// Brand palette, adaptive so output stays readable on light terminals.
var (
	rose  = lipgloss.AdaptiveColor{Light: "#C2185B", Dark: "#F48FB1"}
	mint  = lipgloss.AdaptiveColor{Light: "#00796B", Dark: "#80CBC4"}
	stone = lipgloss.AdaptiveColor{Light: "#616161", Dark: "#9E9E9E"}
	ember = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF9A9A"}
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(rose).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(rose)

	doneStyle = lipgloss.NewStyle().Foreground(mint)

	// labels are padded so PrintRow values line up
	labelStyle = lipgloss.NewStyle().Foreground(stone).Width(10)

	failStyle = lipgloss.NewStyle().Bold(true).Foreground(ember)
)
