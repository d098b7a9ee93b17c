package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func setupRecorder(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, sr
}

func TestNewDBTracingPlugin_Defaults(t *testing.T) {
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, nil)
	assert.Equal(t, 200*time.Millisecond, p.config.SlowQueryThresh)
	assert.Equal(t, "sales-report:db-tracing", p.Name())
	assert.False(t, DefaultDBTracingConfig().Enabled)
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Use(NewDBTracingPlugin(DefaultDBTracingConfig(), nil)))

	assert.Nil(t, db.Callback().Query().Get("db_timing:after_query"))
}

func TestDBTracingPlugin_RecordsSpans(t *testing.T) {
	db := setupTestDB(t)
	tp, sr := setupRecorder(t)

	require.NoError(t, db.Use(NewDBTracingPlugin(DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Second,
		DBSystem:        "sqlite",
		TracerProvider:  tp,
	}, zap.NewNop())))
	assert.NotNil(t, db.Callback().Query().Get("db_timing:after_query"))

	ctx, parent := tp.Tracer("test").Start(context.Background(), "sheet.upload")
	require.NoError(t, db.WithContext(ctx).Create(&tracedRow{Name: "a"}).Error)

	var found tracedRow
	require.NoError(t, db.WithContext(ctx).First(&found, "name = ?", "a").Error)
	assert.Equal(t, "a", found.Name)

	err := db.WithContext(ctx).Table("missing_table").Find(&[]tracedRow{}).Error
	assert.Error(t, err)
	parent.End()

	spans := sr.Ended()
	assert.Greater(t, len(spans), 1)

	failed := false
	for _, s := range spans {
		if s.Status().Code == codes.Error {
			failed = true
		}
	}
	assert.True(t, failed, "the failing statement marks a span as error")
}

func TestDBTracingPlugin_SlowQuery(t *testing.T) {
	db := setupTestDB(t)
	tp, sr := setupRecorder(t)
	core, logs := observer.New(zap.WarnLevel)

	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Nanosecond}, zap.New(core))

	ctx, span := tp.Tracer("test").Start(context.Background(), "report.query")
	stmt := db.WithContext(ctx).Session(&gorm.Session{})
	stmt.Statement.Table = "sales_records"
	stmt.Statement.Context = context.WithValue(ctx, queryStartTimeKey, time.Now().Add(-time.Second))
	p.afterStatement(stmt)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "slow_query_warning", spans[0].Events()[0].Name)
	assert.Equal(t, 1, logs.FilterMessage("slow query").Len())
}

func TestAfterStatement_NonRecording(t *testing.T) {
	db := setupTestDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, nil)

	stmt := db.WithContext(context.Background()).Session(&gorm.Session{})
	assert.NotPanics(t, func() { p.afterStatement(stmt) })

	stmt.Statement.Context = nil
	assert.NotPanics(t, func() { p.afterStatement(stmt) })
}
