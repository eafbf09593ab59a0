package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorBlue    = lipgloss.Color("#2563EB")
	ColorNavy    = lipgloss.Color("#94B3FD")
	ColorGreen   = lipgloss.Color("#10B981")
	ColorRed     = lipgloss.Color("#EF4444")
	ColorYellow  = lipgloss.Color("#F59E0B")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	RunningDotStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	IdleDotStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	TimerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorNavy)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	ActiveCardStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	PrayerDoneStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	PrayerActiveStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	PrayerMissedStyle = lipgloss.NewStyle().
				Foreground(ColorRed)

	PrayerPendingStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Strikethrough(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)
)
