package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.ForceFlush(context.Background()))
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "ledger.append_movement")
	defer span.End()

	assert.NotNil(t, ctx)
	assert.NotNil(t, span)

	RecordError(span, errors.New("boom"))
	RecordError(span, nil)
	MarkSuccess(span)
}

func TestStartServiceSpan(t *testing.T) {
	_, span := StartServiceSpan(context.Background(), "costing", "unit_cost")
	defer span.End()

	assert.NotNil(t, span)
}
