package logger

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger
var Log *zap.Logger

// Initialize sets up the global logger with the specified log level
func Initialize(level string) error {
	// Parse log level
	var zapLevel zapcore.Level
	err := zapLevel.UnmarshalText([]byte(level))
	if err != nil {
		zapLevel = zap.InfoLevel
	}

	// Create custom time encoder for UTC timestamps
	customTimeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.RFC3339))
	}

	// Create logger config
	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(zapLevel),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: false,
		Sampling:          nil,
		Encoding:          "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     customTimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	// Build the logger
	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)
	if err != nil {
		return err
	}

	// Set global logger
	Log = logger

	return nil
}

// WithLogger attaches a scoped logger to the context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithRequestID stores a request correlation ID on the context. The ID is
// attached as a field by FromContext so every log line below the transport
// layer carries it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request correlation ID, or "" if unset.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromContext extracts a logger from the context
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return Log // Return global logger if context is nil
	}

	baseLogger := Log // Start with the global logger
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		baseLogger = logger // Use logger from context if available
	}

	// Check for requestID in context and add it as a field
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		return baseLogger.With(zap.String("request_id", requestID))
	}

	return baseLogger
}

// FromContextOr extracts a logger from the context, falling back to the
// provided logger instead of the global one
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if fallback == nil {
		fallback = Log
	}
	if ctx == nil {
		return fallback
	}

	baseLogger := fallback
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		baseLogger = logger
	}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		return baseLogger.With(zap.String("request_id", requestID))
	}
	return baseLogger
}

// Sync flushes any buffered log entries
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
)
