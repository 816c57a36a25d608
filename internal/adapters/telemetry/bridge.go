package telemetry

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Sender receives bubbletea messages; *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// MsgSpanDone reports a finished span to the interactive screen.
type MsgSpanDone struct {
	Name     string
	Command  string
	Duration time.Duration
	Err      error
}

// Bridge implements sdktrace.SpanProcessor to forward finished spans to a
// bubbletea program as MsgSpanDone messages.
type Bridge struct {
	sender Sender
	prefix string
}

// NewBridge returns a Bridge forwarding spans whose name starts with prefix.
// An empty prefix forwards every span.
func NewBridge(sender Sender, prefix string) *Bridge {
	return &Bridge{sender: sender, prefix: prefix}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.sender == nil || !s.SpanContext().IsValid() {
		return
	}
	if len(s.Name()) < len(b.prefix) || s.Name()[:len(b.prefix)] != b.prefix {
		return
	}

	msg := MsgSpanDone{
		Name:     s.Name(),
		Duration: s.EndTime().Sub(s.StartTime()),
	}
	for _, kv := range s.Attributes() {
		if kv.Key == "command" {
			msg.Command = kv.Value.AsString()
		}
	}
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "command failed"
		}
		msg.Err = errors.New(desc)
	}

	b.sender.Send(msg)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(context.Context) error {
	return nil
}
