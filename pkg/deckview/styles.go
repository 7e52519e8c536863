package deckview

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("212")
	successColor = lipgloss.Color("42")
	errorColor   = lipgloss.Color("203")
	mutedColor   = lipgloss.Color("241")
	borderColor  = lipgloss.Color("240")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
	errStyle   = lipgloss.NewStyle().Foreground(errorColor)

	likeStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	nopeStyle = lipgloss.NewStyle().Bold(true).Foreground(errorColor)

	// Stamps drawn on the top card while it is dragged past half the threshold
	likeStamp = lipgloss.NewStyle().Bold(true).Foreground(successColor).
			Border(lipgloss.NormalBorder()).BorderForeground(successColor).Padding(0, 1)
	nopeStamp = lipgloss.NewStyle().Bold(true).Foreground(errorColor).
			Border(lipgloss.NormalBorder()).BorderForeground(errorColor).Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	cardImageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	cardTagStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	cardBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
)
