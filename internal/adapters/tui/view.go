package tui

import (
	"strings"

	"github.com/Viskhan-95/golden-chicken/internal/ui/style"
)

// View renders the current state of the model as a string.
func (m *Model) View() string {
	if m.Viewport.Height == 0 {
		return "Initializing..."
	}

	var b strings.Builder

	title := m.Frame.Title
	if title == "" {
		title = "golden-chicken"
	}
	route := m.Frame.Route
	if route == "" {
		route = "#"
	}
	b.WriteString(titleStyle.Render(title) + routeStyle.Render(route) + "\n\n")
	b.WriteString(m.Viewport.View() + "\n")

	if m.Notice != "" {
		b.WriteString(noticeStyle.Render(style.Warning+" "+m.Notice) + "\n")
	} else {
		b.WriteString("\n")
	}

	switch {
	case strings.HasPrefix(m.Status, style.Cross):
		b.WriteString(statusErrorStyle.Render(m.Status) + "\n")
	case strings.HasPrefix(m.Status, style.Check):
		b.WriteString(statusOKStyle.Render(m.Status) + "\n")
	default:
		b.WriteString(statusStyle.Render(m.Status) + "\n")
	}

	b.WriteString(m.Input.View())
	return b.String()
}
