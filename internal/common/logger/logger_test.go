package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapWrapper_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	log.WithFields(map[string]interface{}{"view": "admin"}).
		WithError(errors.New("boom")).
		Warn("upstream failed", map[string]interface{}{"status": 502, "cause": errors.New("bad gateway")})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "upstream failed", entries[0].Message)
		assert.Equal(t, "admin", ctx["view"])
		assert.Equal(t, "boom", ctx["error"])
		assert.Equal(t, "bad gateway", ctx["cause"])
		assert.EqualValues(t, 502, ctx["status"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	l := New("warn", "json", "")
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestContextLogger(t *testing.T) {
	fallback := NewNoOpLogger()
	assert.Equal(t, fallback, FromContext(context.Background(), fallback))

	scoped := NewTestLogger(t)
	ctx := WithContext(context.Background(), scoped)
	assert.Equal(t, scoped, FromContext(ctx, fallback))
}
