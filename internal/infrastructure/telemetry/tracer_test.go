package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"

	"github.com/salesreport/backend/internal/infrastructure/config"
	"github.com/salesreport/backend/internal/infrastructure/telemetry"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:4317",
		ServiceName:       "test-service",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NotNil(t, tp.Provider())
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProviderWithProcessor(t *testing.T) {
	original := otel.GetTracerProvider()
	defer otel.SetTracerProvider(original)

	sr := tracetest.NewSpanRecorder()
	tp := telemetry.NewTracerProviderWithProcessor(sr, zaptest.NewLogger(t))
	assert.True(t, tp.IsEnabled())

	_, span := telemetry.StartSpan(context.Background(), "global")
	span.End()
	require.Len(t, sr.Ended(), 1)

	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestConfigFrom(t *testing.T) {
	cfg := telemetry.ConfigFrom(
		config.AppConfig{Name: "sales-report", Version: "1.2.0"},
		config.TelemetryConfig{Enabled: true, CollectorEndpoint: "otel:4317", SamplingRatio: 0.25},
	)
	assert.Equal(t, "sales-report", cfg.ServiceName)
	assert.Equal(t, "1.2.0", cfg.ServiceVersion)
	assert.Equal(t, 0.25, cfg.SamplingRatio)

	cfg = telemetry.ConfigFrom(config.AppConfig{Name: "app"}, config.TelemetryConfig{ServiceName: "custom"})
	assert.Equal(t, "custom", cfg.ServiceName)
}
