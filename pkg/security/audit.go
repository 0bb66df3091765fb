package security

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType classifies an audit event.
type EventType string

const (
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventValidationFailed   EventType = "validation_failed"
	EventSessionCleared     EventType = "session_cleared"
)

// AuditEvent is a structured security event emitted alongside the regular
// application log.
type AuditEvent struct {
	Timestamp    time.Time      `json:"timestamp"`
	Service      string         `json:"service"`
	Environment  string         `json:"env"`
	Level        string         `json:"level"`
	Event        EventType      `json:"event"`
	SubjectType  string         `json:"subject_type,omitempty"` // "user_id", "ip"
	SubjectValue string         `json:"subject_value,omitempty"`
	IP           string         `json:"ip,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	RequestID    string         `json:"request_id,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// AuditLogger provides structured logging for security events via Zap.
type AuditLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var defaultLogger *AuditLogger

// InitAuditLogger initializes the audit logger. Call once at startup.
func InitAuditLogger(serviceName, environment string) *AuditLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	defaultLogger = &AuditLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
	return defaultLogger
}

// DefaultLogger returns the audit logger, initializing a fallback one when
// startup initialization was skipped (tests, tooling).
func DefaultLogger() *AuditLogger {
	if defaultLogger == nil {
		return InitAuditLogger("jobtracker-backend", getEnvironment())
	}
	return defaultLogger
}

// Log emits one audit event.
func (al *AuditLogger) Log(ctx context.Context, event AuditEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = al.serviceName
	event.Environment = al.environment

	level := zapcore.WarnLevel
	if event.Event == EventSessionCleared {
		level = zapcore.InfoLevel
	}
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	al.zapLogger.Log(level, string(event.Event), fields...)
}

// LogUnauthorized logs a rejected bearer token or missing credential.
func (al *AuditLogger) LogUnauthorized(ctx context.Context, ip, userAgent, requestID, reason string) {
	al.Log(ctx, AuditEvent{
		Event:        EventUnauthorizedAccess,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]any{"reason": reason},
	})
}

// LogRateLimitTriggered logs a request stopped by rate limiting.
func (al *AuditLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	al.Log(ctx, AuditEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]any{"endpoint": endpoint},
	})
}

// LogSessionCleared logs an explicit sign-out.
func (al *AuditLogger) LogSessionCleared(ctx context.Context, userID, ip, requestID string) {
	al.Log(ctx, AuditEvent{
		Event:        EventSessionCleared,
		SubjectType:  "user_id",
		SubjectValue: userID,
		IP:           ip,
		RequestID:    requestID,
	})
}

// Sync flushes buffered entries.
func (al *AuditLogger) Sync() error {
	return al.zapLogger.Sync()
}

func getEnvironment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
