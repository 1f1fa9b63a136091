package tui

import "github.com/charmbracelet/lipgloss"

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("236")).
			Padding(0, 1)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	actionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("160")).
			Padding(0, 2)
	buttonDisabledStyle = buttonStyle.
				Background(lipgloss.Color("238")).
				Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
)
