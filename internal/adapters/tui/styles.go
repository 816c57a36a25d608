package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Viskhan-95/golden-chicken/internal/ui/style"
)

var (
	// Header Styles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Gold).
			Foreground(style.Ink)

	routeStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			PaddingLeft(1)

	// Frame Style.
	frameStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	// Footer Styles.
	noticeStyle = lipgloss.NewStyle().
			Foreground(style.Yellow)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(style.Red)

	statusStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)
)
