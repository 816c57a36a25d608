package telemetry_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Viskhan-95/golden-chicken/internal/adapters/telemetry"
	"github.com/Viskhan-95/golden-chicken/internal/core/ports"
)

type fakeSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (f *fakeSender) Send(msg tea.Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func installRecorder(t *testing.T, opts ...sdktrace.TracerProviderOption) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	opts = append(opts, sdktrace.WithSpanProcessor(rec))
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return rec
}

func TestOTelTracer_Attributes(t *testing.T) {
	rec := installRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "catalog.load", ports.WithAttribute("path", "menu.yaml"))
	span.SetAttribute("products", 25)
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("cached", true)
	span.SetAttribute("ids", []string{"a", "b"})
	span.SetAttribute("other", struct{ A int }{1})
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "catalog.load", ended[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "menu.yaml", attrs["path"].AsString())
	assert.Equal(t, int64(25), attrs["products"].AsInt64())
	assert.InDelta(t, 0.5, attrs["ratio"].AsFloat64(), 0)
	assert.True(t, attrs["cached"].AsBool())
	assert.Equal(t, []string{"a", "b"}, attrs["ids"].AsStringSlice())
	assert.Equal(t, "{1}", attrs["other"].AsString())
}

func TestOTelSpan_RecordError(t *testing.T) {
	rec := installRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "ok")
	span.RecordError(nil)
	span.End()

	_, span = tracer.Start(context.Background(), "failed")
	span.RecordError(errors.New("boom"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, "boom", ended[1].Status().Description)
	require.Len(t, ended[1].Events(), 1)
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "anything", ports.WithAttribute("k", "v"))
	assert.Equal(t, ctx, got)
	assert.NotPanics(t, func() {
		span.SetAttribute("k", 1)
		span.RecordError(errors.New("ignored"))
		span.End()
	})
}

func TestBridge_ForwardsMatchingSpans(t *testing.T) {
	sender := &fakeSender{}
	installRecorder(t, sdktrace.WithSpanProcessor(telemetry.NewBridge(sender, "session.")))
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "session.exec", ports.WithAttribute("command", "add"))
	span.End()

	_, span = tracer.Start(context.Background(), "catalog.load")
	span.End()

	_, span = tracer.Start(context.Background(), "session.exec", ports.WithAttribute("command", "remove"))
	span.RecordError(errors.New("product not in cart"))
	span.End()

	require.Len(t, sender.msgs, 2)

	first, ok := sender.msgs[0].(telemetry.MsgSpanDone)
	require.True(t, ok)
	assert.Equal(t, "session.exec", first.Name)
	assert.Equal(t, "add", first.Command)
	assert.NoError(t, first.Err)
	assert.GreaterOrEqual(t, first.Duration.Nanoseconds(), int64(0))

	second, ok := sender.msgs[1].(telemetry.MsgSpanDone)
	require.True(t, ok)
	assert.Equal(t, "remove", second.Command)
	require.Error(t, second.Err)
	assert.Equal(t, "product not in cart", second.Err.Error())
}

func TestBridge_NilSender(t *testing.T) {
	bridge := telemetry.NewBridge(nil, "")
	installRecorder(t, sdktrace.WithSpanProcessor(bridge))

	_, span := telemetry.NewOTelTracer("test").Start(context.Background(), "x")
	assert.NotPanics(t, span.End)
	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, bridge.Shutdown(context.Background()))
}

func TestSetup_TraceWriter(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := telemetry.Setup(telemetry.WithTraceWriter(&buf))
	require.NoError(t, err)

	_, span := telemetry.NewOTelTracer("test").Start(context.Background(), "router.navigate",
		ports.WithAttribute("fragment", "#cart"))
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name":"router.navigate"`)
	assert.Contains(t, buf.String(), "#cart")
}
