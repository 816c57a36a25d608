package storefront

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Viskhan-95/golden-chicken/internal/ui/style"
)

// Theme holds the styles the components render with.
type Theme struct {
	Title   lipgloss.Style
	Link    lipgloss.Style
	Active  lipgloss.Style
	Muted   lipgloss.Style
	Price   lipgloss.Style
	Counter lipgloss.Style
	InCart  lipgloss.Style
	Notice  lipgloss.Style
}

// NewTheme builds the storefront styles on r.
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Title:   r.NewStyle().Bold(true).Foreground(style.Gold),
		Link:    r.NewStyle().Foreground(style.White),
		Active:  r.NewStyle().Bold(true).Foreground(style.Ember),
		Muted:   r.NewStyle().Foreground(style.Slate),
		Price:   r.NewStyle().Foreground(style.Gold),
		Counter: r.NewStyle().Bold(true).Foreground(style.Ember),
		InCart:  r.NewStyle().Foreground(style.Green),
		Notice:  r.NewStyle().Italic(true).Foreground(style.Slate),
	}
}
