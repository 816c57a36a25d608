// Package tui provides the interactive terminal screen of the storefront.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

const (
	promptText  = "› "
	placeholder = "help, search бургер, category 1, add 1, cart, quit"
	historySize = 100
)

// NewModel creates a new TUI model. ctx bounds every command it runs.
func NewModel(ctx context.Context, exec Executor) *Model {
	ti := textinput.New()
	ti.Prompt = promptText
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Focus()

	return &Model{
		ctx:          ctx,
		exec:         exec,
		Input:        ti,
		Viewport:     viewport.New(0, 0),
		historyIndex: -1,
		describe:     func(err error) string { return err.Error() },
	}
}
