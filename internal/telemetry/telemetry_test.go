package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"usermanagement/internal/config"
	"usermanagement/internal/logging"
)

func TestSetup_DisabledKeepsGlobalProviders(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), config.ObservabilityConfig{Enabled: false, ServiceName: "svc"}, logging.NewNop())
	require.NoError(t, err)

	assert.Equal(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_EnabledInstallsSDKProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	cfg := config.ObservabilityConfig{
		Enabled:      true,
		ServiceName:  "user-management-api",
		ServiceEnv:   "Test",
		OtelEndpoint: "127.0.0.1:1",
	}
	shutdown, err := Setup(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)

	// nothing listens on the endpoint, so only make sure shutdown returns
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestResolveEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	assert.Equal(t, defaultEndpoint, resolveEndpoint(""))
	assert.Equal(t, "collector:4317", resolveEndpoint("collector:4317"))

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "env-collector:4317")
	assert.Equal(t, "env-collector:4317", resolveEndpoint(""))
}
