package tui

import (
	"github.com/Viskhan-95/golden-chicken/internal/adapters/telemetry"
	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/core/ports"
)

var _ ports.Screen = (*Screen)(nil)

// Screen implements ports.Screen by sending messages to a running program.
// It must only be used from outside the program's update loop, e.g. from a
// tea.Cmd.
type Screen struct {
	sender telemetry.Sender
}

// NewScreen creates a Screen that forwards to sender, usually a *tea.Program.
func NewScreen(sender telemetry.Sender) *Screen {
	return &Screen{sender: sender}
}

// Render sends the frame to the program.
func (s *Screen) Render(frame domain.Frame) error {
	s.sender.Send(MsgFrame{Frame: frame})
	return nil
}

// Notice sends a notice to the program.
func (s *Screen) Notice(msg string) error {
	s.sender.Send(MsgNotice{Text: msg})
	return nil
}
