package tui

import "github.com/Viskhan-95/golden-chicken/internal/core/domain"

// MsgFrame replaces the visible frame.
type MsgFrame struct {
	Frame domain.Frame
}

// MsgNotice shows a one-line message under the frame.
type MsgNotice struct {
	Text string
}

// MsgExecDone is sent when a command line has been executed.
type MsgExecDone struct {
	Line string
	Err  error
}
