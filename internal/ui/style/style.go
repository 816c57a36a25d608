// Package style provides the storefront palette and icons shared by the log
// handler, the terminal screens and the view components.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Gold   = lipgloss.Color("#E9B949")
	Ember  = lipgloss.Color("#C2410C")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0B0F19")
	Mist   = lipgloss.Color("#F6F7FB")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Prev    = "←"
	Next    = "→"
	Cart    = "⊕"
	InCart  = "⊖"
)
