package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger := newTestLogger(t)

	ctx := WithContext(context.Background(), logger)

	assert.NotNil(t, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	logger := FromContext(context.Background())

	// Should return a no-op logger
	assert.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Info("test")
	})
}

func TestWithRequestID(t *testing.T) {
	logger := newTestLogger(t)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")

	assert.NotNil(t, enriched)
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestWithCompanyID(t *testing.T) {
	logger := newTestLogger(t)

	ctx, enriched := WithCompanyID(context.Background(), logger, "company-456")

	assert.NotNil(t, enriched)
	assert.Equal(t, "company-456", GetCompanyID(ctx))
}

func TestWithActorID(t *testing.T) {
	logger := newTestLogger(t)

	ctx, enriched := WithActorID(context.Background(), logger, "actor-789")

	assert.NotNil(t, enriched)
	assert.Equal(t, "actor-789", GetActorID(ctx))
}

func TestGetters_NotFound(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetCompanyID(ctx))
	assert.Empty(t, GetActorID(ctx))
}

func TestContextChaining(t *testing.T) {
	logger := newTestLogger(t)

	ctx := context.Background()
	ctx, logger = WithRequestID(ctx, logger, "req-1")
	ctx, logger = WithCompanyID(ctx, logger, "company-1")
	ctx, logger = WithActorID(ctx, logger, "actor-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "company-1", GetCompanyID(ctx))
	assert.Equal(t, "actor-1", GetActorID(ctx))
	assert.NotNil(t, logger)
}

func TestContextKeys(t *testing.T) {
	assert.NotEqual(t, LoggerKey, RequestIDKey)
	assert.NotEqual(t, RequestIDKey, CompanyIDKey)
	assert.NotEqual(t, CompanyIDKey, ActorIDKey)
	assert.NotEqual(t, LoggerKey, ActorIDKey)
}

func TestFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
	logger := FromContext(ctx)

	assert.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Info("test")
	})
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestGetSpanID_NoSpan(t *testing.T) {
	assert.Empty(t, GetSpanID(context.Background()))
}

func TestTraceIDs_InvalidSpanContext(t *testing.T) {
	tp := noop.NewTracerProvider()
	tracer := tp.Tracer("test")
	ctx, span := tracer.Start(context.Background(), "test-span")
	defer span.End()

	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	assert.False(t, spanCtx.IsValid())

	assert.Empty(t, GetTraceID(ctx))
	assert.Empty(t, GetSpanID(ctx))
}

func TestWithTraceContext_NoSpan(t *testing.T) {
	baseLogger := zap.NewNop()

	enriched := WithTraceContext(context.Background(), baseLogger)

	// Without a valid span, should return the same logger
	assert.Equal(t, baseLogger, enriched)
}

func TestL_ReturnsContextLogger(t *testing.T) {
	cl := L(context.Background())

	assert.NotNil(t, cl)
	assert.NotNil(t, cl.ctx)
	assert.NotNil(t, cl.logger)
}

func TestWithLogger_UsesProvidedLogger(t *testing.T) {
	baseLogger := newTestLogger(t)

	cl := WithLogger(context.Background(), baseLogger)

	assert.NotNil(t, cl)
	assert.Equal(t, baseLogger, cl.logger)
}

func TestContextLogger_LogLevels(t *testing.T) {
	cl := WithLogger(context.Background(), zap.NewNop())

	assert.NotPanics(t, func() {
		cl.Debug("debug message")
		cl.Info("info message")
		cl.Warn("warn message")
		cl.Error("error message")
	})
}

func TestContextLogger_EnrichesWithContextFields(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	baseLogger := zap.New(core)

	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, baseLogger, "req-123")
	ctx, _ = WithCompanyID(ctx, baseLogger, "company-456")
	ctx, _ = WithActorID(ctx, baseLogger, "actor-789")
	ctx = WithContext(ctx, baseLogger)

	L(ctx).Info("boxes checked", zap.Int("boxes", 3))

	output := buf.String()
	assert.Contains(t, output, `"request_id":"req-123"`)
	assert.Contains(t, output, `"company_id":"company-456"`)
	assert.Contains(t, output, `"actor_id":"actor-789"`)
	assert.Contains(t, output, `"boxes":3`)
	assert.Contains(t, output, `"msg":"boxes checked"`)
}

func TestContextLogger_EmptyContextFields(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	baseLogger := zap.New(core)

	cl := WithLogger(context.Background(), baseLogger)
	cl.Info("test")

	output := buf.String()
	assert.Contains(t, output, `"msg":"test"`)
	assert.NotContains(t, output, `"request_id":""`)
	assert.NotContains(t, output, `"company_id":""`)
	assert.NotContains(t, output, `"actor_id":""`)
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := &ContextLogger{
		ctx:    context.Background(),
		logger: nil,
	}

	assert.NotPanics(t, func() {
		cl.Info("test")
	})
}

func TestContextLogger_WithChaining(t *testing.T) {
	cl := WithLogger(context.Background(), zap.NewNop()).
		With(zap.String("field1", "value1")).
		With(zap.String("field2", "value2"))

	assert.NotNil(t, cl)
	assert.NotPanics(t, func() {
		cl.Info("chained test")
	})
}

func TestContextLogger_ZapAndSugar(t *testing.T) {
	cl := WithLogger(context.Background(), zap.NewNop())

	assert.NotNil(t, cl.Zap())
	assert.NotNil(t, cl.Sugar())
	assert.NotPanics(t, func() {
		cl.Zap().Info("test")
		cl.Sugar().Infof("test %s", "message")
	})
}
