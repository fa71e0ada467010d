package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithoutContext(t *testing.T) {
	for _, tc := range []struct {
		name          string
		log           func(Logger, string)
		expectedLevel zapcore.Level
	}{
		{
			name:          "Info",
			log:           func(l Logger, msg string) { l.Info(msg) },
			expectedLevel: zapcore.InfoLevel,
		},
		{
			name:          "Debug",
			log:           func(l Logger, msg string) { l.Debug(msg) },
			expectedLevel: zapcore.DebugLevel,
		},
		{
			name:          "Warn",
			log:           func(l Logger, msg string) { l.Warn(msg) },
			expectedLevel: zapcore.WarnLevel,
		},
		{
			name:          "Error",
			log:           func(l Logger, msg string) { l.Error(msg) },
			expectedLevel: zapcore.ErrorLevel,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			observerLogger, logs := observer.New(zap.DebugLevel)
			dut := &ZapLogger{zap.New(observerLogger)}
			const testMessage = "ABC"
			tc.log(dut, testMessage)
			require.Equal(t, 1, logs.Len())

			actualMessage := logs.All()[0]
			require.Equal(t, testMessage, actualMessage.Message)
			require.Empty(t, actualMessage.ContextMap())
			require.Equal(t, tc.expectedLevel, actualMessage.Level)
		})
	}
}

func TestWithContext(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	tracedCtx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	for _, tc := range []struct {
		name          string
		log           func(Logger, context.Context, string)
		expectedLevel zapcore.Level
	}{
		{
			name:          "InfoWithContext",
			log:           func(l Logger, ctx context.Context, msg string) { l.InfoWithContext(ctx, msg) },
			expectedLevel: zapcore.InfoLevel,
		},
		{
			name:          "DebugWithContext",
			log:           func(l Logger, ctx context.Context, msg string) { l.DebugWithContext(ctx, msg) },
			expectedLevel: zapcore.DebugLevel,
		},
		{
			name:          "WarnWithContext",
			log:           func(l Logger, ctx context.Context, msg string) { l.WarnWithContext(ctx, msg) },
			expectedLevel: zapcore.WarnLevel,
		},
		{
			name:          "ErrorWithContext",
			log:           func(l Logger, ctx context.Context, msg string) { l.ErrorWithContext(ctx, msg) },
			expectedLevel: zapcore.ErrorLevel,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			observerLogger, logs := observer.New(zap.DebugLevel)
			dut := &ZapLogger{zap.New(observerLogger)}
			const testMessage = "ABC"

			tc.log(dut, context.Background(), testMessage)
			tc.log(dut, tracedCtx, testMessage)
			require.Equal(t, 2, logs.Len())

			untraced := logs.All()[0]
			require.Equal(t, testMessage, untraced.Message)
			require.Empty(t, untraced.ContextMap())
			require.Equal(t, tc.expectedLevel, untraced.Level)

			traced := logs.All()[1]
			require.Equal(t, map[string]interface{}{
				"trace_id": traceID.String(),
			}, traced.ContextMap())
		})
	}
}

func TestWithFields(t *testing.T) {
	observerLogger, logs := observer.New(zap.DebugLevel)
	logger := &ZapLogger{zap.New(observerLogger)}

	const testMessage = "ABC"

	newLogger := logger.With(
		zap.String("TestOption", "Message"),
	)

	newLogger.Info(testMessage)

	// Check that child message carries the context fields
	expectedZapFields := map[string]interface{}{
		"TestOption": "Message",
	}
	childMessage := logs.All()[0]
	require.Equal(t, expectedZapFields, childMessage.ContextMap())

	// Check that parent message does not carry the context fields
	logger.Info(testMessage)
	parentMessage := logs.All()[1]
	require.Empty(t, parentMessage.ContextMap())
}

func TestNewLogger(t *testing.T) {
	t.Run("none_level_is_noop", func(t *testing.T) {
		l, err := NewLogger("text", "none")
		require.NoError(t, err)
		require.NotNil(t, l)
	})

	t.Run("unknown_level", func(t *testing.T) {
		_, err := NewLogger("json", "verbose")
		require.ErrorContains(t, err, "unknown log level")
	})

	t.Run("unknown_format", func(t *testing.T) {
		_, err := NewLogger("xml", "info")
		require.ErrorContains(t, err, "unknown log format")
	})

	t.Run("json_and_text", func(t *testing.T) {
		for _, format := range []string{"json", "text"} {
			l, err := NewLogger(format, "warn")
			require.NoError(t, err)
			require.NotNil(t, l)
		}
	})

	t.Run("must_panics_on_bad_level", func(t *testing.T) {
		require.Panics(t, func() {
			MustNewLogger("text", "loud")
		})
	})
}

func TestObserverLogger(t *testing.T) {
	l, logs := NewObserverLogger("info")
	l.Debug("hidden")
	l.Info("shown", zap.Int("n", 1))

	require.Equal(t, []string{"shown"}, Messages(logs))
	entries := logs.TakeAll()
	require.Equal(t, int64(1), entries[0].ContextMap()["n"])
	require.Equal(t, 0, logs.Len())
	require.Empty(t, Messages(logs))
}

func TestObserverLoggerBadLevel(t *testing.T) {
	l, logs := NewObserverLogger("chatty")
	l.Debug("kept")
	require.Equal(t, []string{"kept"}, Messages(logs))
}
