package telemetry_test

import (
	"context"
	"testing"

	"github.com/deevus/garten/config"
	"github.com/deevus/garten/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Disabled(t *testing.T) {
	p, err := telemetry.Setup(context.Background(), config.TracingConfig{})
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Tracer())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_Enabled(t *testing.T) {
	p, err := telemetry.Setup(context.Background(), config.TracingConfig{
		Endpoint:    "127.0.0.1:4318",
		ServiceName: "garten-test",
		Insecure:    true,
	})
	require.NoError(t, err)

	assert.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "probe")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Nothing listens on the endpoint; only make sure shutdown returns.
	_ = p.Shutdown(ctx)
}

func TestNilProvider(t *testing.T) {
	var p *telemetry.Provider
	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Tracer())
	assert.NoError(t, p.Shutdown(context.Background()))
}
