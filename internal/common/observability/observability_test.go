package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{}) {}
func (nopLogger) Warn(string, map[string]interface{}) {}

func TestObservability_RecordCall(t *testing.T) {
	obs := New("internmatch-web-test", nopLogger{})
	require.NotNil(t, obs)

	assert.NotPanics(t, func() {
		obs.RecordCall(context.Background(), "list_internships", "success", 12*time.Millisecond)
		obs.Shutdown()
	})
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordCall(context.Background(), "recommend", "error", time.Second)
		obs.AttachTracing(nil)
		obs.Shutdown()
	})
}

func TestNewTracing_Disabled(t *testing.T) {
	tr, err := NewTracing("svc", "", false)
	require.NoError(t, err)

	_, span := tr.Tracer().Start(context.Background(), "op")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestTracing_NilTracer(t *testing.T) {
	var tr *Tracing
	assert.NotNil(t, tr.Tracer())
	assert.NoError(t, tr.Shutdown(context.Background()))
}
