package watch

import (
	"log/slog"

	"github.com/Viskhan-95/golden-chicken/internal/engine/keypath"
	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
)

// Change is one reported mutation.
type Change struct {
	// Path locates the mutated value from the root.
	Path keypath.Path
	// Name is the property that was written or the method that was called.
	Name string
	// Value is the new value; for method calls it is the mutated collection.
	Value any
	// Previous is the value before the mutation; for method calls it is a one-level
	// copy of the collection taken before the call.
	Previous any
	// Apply is set when the change came from a method call.
	Apply *ApplyData
}

// ApplyData describes the method call behind a Change.
type ApplyData struct {
	Name   string
	Args   []any
	Result any
}

// LogValue renders the change for structured logs.
func (c Change) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("path", c.Path.String()),
		slog.String("name", c.Name),
		slog.String("value", value.Display(c.Value)),
		slog.String("previous", value.Display(c.Previous)),
	}
	if c.Apply != nil {
		attrs = append(attrs, slog.String("method", c.Apply.Name), slog.Int("args", len(c.Apply.Args)))
	}
	return slog.GroupValue(attrs...)
}
