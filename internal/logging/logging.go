// Package logging provides structured logging with trace-ID propagation.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	// TraceIDKey carries the request trace ID through a context.
	TraceIDKey contextKey = "trace_id"
	// UserIDKey carries the authenticated subject through a context.
	UserIDKey contextKey = "user_id"
)

// Logger wraps a logrus logger bound to a service name.
type Logger struct {
	base    *logrus.Logger
	service string
}

// New creates a Logger for the named service. Level is one of debug, info,
// warn, error; format is "json" or "text".
func New(service, level, format string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &Logger{base: l, service: service}
}

// SetOutput redirects log output, mainly for tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.base.SetOutput(w)
}

// WithContext returns an entry annotated with the service name and any
// trace/user identifiers found in ctx.
func (l *Logger) WithContext(ctx context.Context) *logrus.Entry {
	entry := l.base.WithField("service", l.service)
	if traceID := GetTraceID(ctx); traceID != "" {
		entry = entry.WithField("trace_id", traceID)
	}
	if userID := GetUserID(ctx); userID != "" {
		entry = entry.WithField("user_id", userID)
	}
	return entry
}

// WithError returns an entry with the error attached.
func (l *Logger) WithError(err error) *logrus.Entry {
	return l.base.WithField("service", l.service).WithError(err)
}

// WithFields returns an entry with the given fields attached.
func (l *Logger) WithFields(fields map[string]interface{}) *logrus.Entry {
	return l.base.WithField("service", l.service).WithFields(fields)
}

func (l *Logger) Debug(args ...interface{}) { l.base.WithField("service", l.service).Debug(args...) }
func (l *Logger) Info(args ...interface{})  { l.base.WithField("service", l.service).Info(args...) }
func (l *Logger) Warn(args ...interface{})  { l.base.WithField("service", l.service).Warn(args...) }
func (l *Logger) Error(args ...interface{}) { l.base.WithField("service", l.service).Error(args...) }
func (l *Logger) Fatal(args ...interface{}) { l.base.WithField("service", l.service).Fatal(args...) }

// LogRequest logs a completed HTTP request.
func (l *Logger) LogRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	l.WithContext(ctx).WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": duration.Milliseconds(),
	}).Info("http request")
}

// NewTraceID generates a fresh trace identifier.
func NewTraceID() string {
	return uuid.NewString()
}

// WithTraceID stores a trace ID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the trace ID stored in the context, if any.
func GetTraceID(ctx context.Context) string {
	if v, ok := ctx.Value(TraceIDKey).(string); ok {
		return v
	}
	return ""
}

// WithUserID stores the authenticated subject in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID returns the authenticated subject stored in the context, if any.
func GetUserID(ctx context.Context) string {
	if v, ok := ctx.Value(UserIDKey).(string); ok {
		return v
	}
	return ""
}
