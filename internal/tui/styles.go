package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleSubtle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleCursor    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleSelected  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleCorrect   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true) // Green
	styleIncorrect = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)  // Red
	styleNotice    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // Yellow
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 0)
	stylePrompt    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	styleScore     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).Padding(1, 1)
	styleAudioTag  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	styleHelp      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(1, 1)
)
