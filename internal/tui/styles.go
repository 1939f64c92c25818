// Package tui implements the Bubble Tea interface for ringline.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	colorGreen  = lipgloss.Color("#9ece6a") // green
	colorYellow = lipgloss.Color("#e0af68") // yellow
	colorRed    = lipgloss.Color("#f38ba8") // red
	colorBlue   = lipgloss.Color("#7aa2f7") // blue
	colorGray   = lipgloss.Color("#565f89") // comment
	colorWhite  = lipgloss.Color("#c0caf5") // foreground
)

// Status line styles.
var (
	statusConnectedStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	statusConnectingStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	statusDisconnectedStyle = lipgloss.NewStyle().
				Foreground(colorGray)

	statusDetailStyle = lipgloss.NewStyle().
				Foreground(colorGray)

	statusBarStyle = lipgloss.NewStyle().
			PaddingLeft(1)
)

// Help line style.
var helpStyle = lipgloss.NewStyle().
	Foreground(colorGray).
	PaddingLeft(1)

// Modal styles.
var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	modalHelpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			MarginTop(1)
)

// Phone number highlight in the log and preview.
var phoneStyle = lipgloss.NewStyle().
	Foreground(colorGreen).
	Bold(true)

// Icons and symbols.
const (
	iconDot  = "•"
	iconLive = "●"
	iconRing = "☎"
)
