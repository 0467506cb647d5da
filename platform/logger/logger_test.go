package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	require.NoError(t, Init("info", true))
	require.NoError(t, Init("debug", false))
	assert.Error(t, Init("loud", true))

	SetNopLogger()
}

func TestWithContextFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &logger{zapLogger: zap.New(core)}

	ctx := WithContext(context.Background(), String("request_id", "r-1"))
	ctx = WithContext(ctx, Int("attempt", 2))

	l.With(String("op", "catalog")).Info(ctx, "done", Bool("cached", true))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "r-1", fields["request_id"])
	assert.EqualValues(t, 2, fields["attempt"])
	assert.Equal(t, "catalog", fields["op"])
	assert.Equal(t, true, fields["cached"])
}
