package ui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Header       lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	Total        lipgloss.Style
	Grid         lipgloss.Style
	CellName     lipgloss.Style
	CellSymbol   lipgloss.Style
	Placeholder  lipgloss.Style
	HelpBar      lipgloss.Style
	Error        lipgloss.Style
}

func newStyles() styles {
	border := lipgloss.RoundedBorder()

	return styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1).
			MarginRight(1),
		ButtonActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1).
			MarginRight(1),
		Total: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Padding(0, 1),
		Grid: lipgloss.NewStyle().
			Border(border).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		CellName: lipgloss.NewStyle().Bold(true),
		CellSymbol: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		HelpBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
