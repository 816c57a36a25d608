package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Viskhan-95/golden-chicken/internal/adapters/telemetry"
	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/ui/style"
)

// chrome is the number of lines around the frame: title, blank, notice, status, input.
const chrome = 5

// Executor runs storefront commands.
type Executor interface {
	Start(ctx context.Context) error
	Exec(ctx context.Context, line string) error
}

// Model is the Bubble Tea model of the storefront: the current frame in a
// scrollable viewport and a command prompt below it.
type Model struct {
	ctx      context.Context
	exec     Executor
	describe func(error) string

	Input    textinput.Model
	Viewport viewport.Model
	Frame    domain.Frame
	Notice   string
	Status   string
	Busy     bool

	history      []string
	historyIndex int
	draft        string
}

// SetExecutor sets the executor commands are sent to. It must be called
// before the program runs.
func (m *Model) SetExecutor(exec Executor) {
	m.exec = exec
}

// SetDescribe sets how command errors are turned into notices.
func (m *Model) SetDescribe(fn func(error) string) {
	if fn != nil {
		m.describe = fn
	}
}

// Init starts the session and the cursor blink.
func (m *Model) Init() tea.Cmd {
	// The prompt waits for the start route to render.
	m.Busy = true
	return tea.Batch(textinput.Blink, m.startCmd())
}

func (m *Model) startCmd() tea.Cmd {
	exec, ctx := m.exec, m.ctx
	return func() tea.Msg {
		if exec == nil {
			return MsgExecDone{Err: domain.ErrNotAvailable}
		}
		return MsgExecDone{Err: exec.Start(ctx)}
	}
}

func (m *Model) execCmd(line string) tea.Cmd {
	exec, ctx := m.exec, m.ctx
	return func() tea.Msg {
		if exec == nil {
			return MsgExecDone{Line: line, Err: domain.ErrNotAvailable}
		}
		return MsgExecDone{Line: line, Err: exec.Exec(ctx, line)}
	}
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // one case per message type
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.Viewport.Width = msg.Width
		m.Viewport.Height = max(msg.Height-chrome, 1)
		m.Input.Width = max(msg.Width-len(promptText)-1, 1)
		return m, nil

	case MsgFrame:
		m.Frame = msg.Frame
		m.Viewport.SetContent(frameStyle.Render(msg.Frame.Body))
		m.Viewport.GotoTop()
		return m, nil

	case MsgNotice:
		m.Notice = msg.Text
		return m, nil

	case MsgExecDone:
		m.Busy = false
		if errors.Is(msg.Err, domain.ErrQuit) {
			return m, tea.Quit
		}
		if msg.Err != nil {
			m.Notice = m.describe(msg.Err)
		}
		return m, nil

	case telemetry.MsgSpanDone:
		m.Status = formatStatus(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // remaining keys go to the prompt
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		if m.Busy {
			return m, nil
		}
		line := m.Input.Value()
		m.Input.SetValue("")
		m.remember(line)
		m.Notice = ""
		m.Busy = true
		return m, m.execCmd(line)

	case tea.KeyUp:
		m.recall(-1)
		return m, nil

	case tea.KeyDown:
		m.recall(1)
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m *Model) remember(line string) {
	m.historyIndex = -1
	m.draft = ""
	if line == "" || (len(m.history) > 0 && m.history[len(m.history)-1] == line) {
		return
	}
	m.history = append(m.history, line)
	if len(m.history) > historySize {
		m.history = m.history[1:]
	}
}

// recall walks the history; dir -1 goes back in time.
func (m *Model) recall(dir int) {
	if len(m.history) == 0 {
		return
	}
	switch {
	case m.historyIndex == -1 && dir < 0:
		m.draft = m.Input.Value()
		m.historyIndex = len(m.history) - 1
	case m.historyIndex == -1:
		return
	default:
		m.historyIndex += dir
	}

	switch {
	case m.historyIndex < 0:
		m.historyIndex = 0
	case m.historyIndex >= len(m.history):
		m.historyIndex = -1
		m.Input.SetValue(m.draft)
		m.Input.CursorEnd()
		return
	}
	m.Input.SetValue(m.history[m.historyIndex])
	m.Input.CursorEnd()
}

func formatStatus(msg telemetry.MsgSpanDone) string {
	name := msg.Command
	if name == "" {
		name = msg.Name
	}
	d := msg.Duration.Round(10 * time.Microsecond)
	if msg.Err != nil {
		return fmt.Sprintf("%s %s failed after %v", style.Cross, name, d)
	}
	return fmt.Sprintf("%s %s in %v", style.Check, name, d)
}
