// Package linear provides a synchronous, line-oriented screen for scripts and CI.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/core/ports"
	"github.com/Viskhan-95/golden-chicken/internal/ui/output"
)

var _ ports.Screen = (*Screen)(nil)

// Screen implements ports.Screen for non-interactive environments.
// Frames go to stdout, notices to stderr.
type Screen struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output
	errOut *termenv.Output

	mu   sync.Mutex
	last *domain.Frame
}

// NewScreen creates a new linear Screen.
func NewScreen(stdout, stderr io.Writer) *Screen {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Screen{
		stdout: stdout,
		stderr: stderr,
		out:    output.NewWithProfile(stdout, output.ColorProfileANSI),
		errOut: output.NewWithProfile(stderr, output.ColorProfileANSI),
	}
}

// Render prints the frame under a title rule. A frame identical to the
// previous one is not printed again.
func (s *Screen) Render(frame domain.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last != nil && *s.last == frame {
		return nil
	}
	s.last = &frame

	route := frame.Route
	if route == "" {
		route = "#"
	}
	title := s.out.String(fmt.Sprintf("== %s ==", frame.Title)).Bold().String()
	where := s.out.String(route).Faint().String()

	body := strings.TrimRight(frame.Body, "\n")
	if _, err := fmt.Fprintf(s.stdout, "%s %s\n%s\n\n", title, where, body); err != nil {
		return err
	}
	return nil
}

// Notice prints a one-line message to stderr.
func (s *Screen) Notice(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbol := s.errOut.String("!").Foreground(termenv.ANSIYellow).String()
	_, err := fmt.Fprintf(s.stderr, "%s %s\n", symbol, msg)
	return err
}
