package ports

import "github.com/Viskhan-95/golden-chicken/internal/core/domain"

// Screen presents rendered storefront frames.
//
//go:generate mockgen -source=screen.go -destination=mocks/mock_screen.go -package=mocks
type Screen interface {
	// Render replaces the visible frame.
	Render(frame domain.Frame) error
	// Notice shows a one-line message next to the frame, e.g. a command error.
	Notice(msg string) error
}
