package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"github.com/Viskhan-95/golden-chicken/internal/adapters/logger"
	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Messages(t *testing.T) {
	tests := []struct {
		name       string
		log        func(l *logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("catalog loaded") },
			goldenName: "info_basic",
		},
		{
			name:       "multiline info",
			log:        func(l *logger.Logger) { l.Info("line1\nline2") },
			goldenName: "info_multiline",
		},
		{
			name:       "warning",
			log:        func(l *logger.Logger) { l.Warn("product already in cart") },
			goldenName: "warn_basic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "standard error",
			err:        os.ErrNotExist,
			goldenName: "error_simple",
		},
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("unexpected EOF"), "failed to parse catalog"),
				"failed to load catalog",
			),
			goldenName: "error_chain",
		},
		{
			name:       "fields on the outer level",
			err:        zerr.With(zerr.Wrap(domain.ErrRouteNotFound, "parse route"), "fragment", "#checkout"),
			goldenName: "error_metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_Verbose(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Slog().Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetVerbose(true)
	lg.Slog().Debug("state changed", slog.Group("change", "path", "cart", "name", "push"))

	g := goldie.New(t)
	g.Assert(t, "debug_group", buf.Bytes())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.Wrap(domain.ErrProductNotFound, "open product"))
	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error":"open product: product not found"`)

	buf.Reset()
	lg.SetJSON(false)
	lg.Info("back to pretty")
	assert.Equal(t, "back to pretty\n", buf.String())
}

func TestCollectErrorEntries(t *testing.T) {
	err := zerr.With(zerr.Wrap(domain.ErrCategoryNotFound, "select category"), "category_id", 9)

	entries := logger.CollectErrorEntries(err)
	require.Len(t, entries, 2)
	assert.Equal(t, "select category", entries[0].Message())
	assert.Equal(t, map[string]any{"category_id": 9}, entries[0].Metadata())
	assert.Equal(t, "category not found", entries[1].Message())

	entries = logger.CollectErrorEntries(zerr.With(errors.New("plain"), "k", "v"))
	require.Len(t, entries, 2)
	assert.Equal(t, "", entries[0].Message())
	assert.Equal(t, "plain", entries[1].Message())
}

func TestFormatErrorEntries_Multiline(t *testing.T) {
	entries := logger.CollectErrorEntries(errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"))
	assert.Equal(t, "Error: yaml: unmarshal errors:\n         line 3: cannot unmarshal", logger.FormatErrorEntries(entries))
}
