package telemetry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/salesreport/backend/internal/infrastructure/config"
	"github.com/salesreport/backend/internal/infrastructure/telemetry"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_MissingServer(t *testing.T) {
	_, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestProfilerConfigFrom(t *testing.T) {
	cfg := telemetry.ProfilerConfigFrom(
		config.AppConfig{Name: "sales-report", Version: "1.2.0"},
		config.TelemetryConfig{ProfilingEnabled: true, ProfilingServer: "http://pyroscope:4040"},
	)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "http://pyroscope:4040", cfg.ServerAddress)
	assert.Equal(t, "1.2.0", cfg.Version)
	assert.NotEmpty(t, cfg.ApplicationName)
}
