package shared

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// AuditLog describes a completed mutation.
type AuditLog struct {
	Action  Action
	Entity  Entity
	Target  string
	Command string
	At      time.Time
}

// AuditLogger writes audit records as structured log entries tagged audit=true.
type AuditLogger struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger, now: time.Now}
}

// Record logs the entry on behalf of the caller in ctx.
func (l *AuditLogger) Record(ctx context.Context, log AuditLog) error {
	if l == nil || l.logger == nil {
		return errors.New("audit logger not initialised")
	}
	if log.Action == "" || log.Entity == "" {
		return errors.New("audit log requires action/entity")
	}
	if log.At.IsZero() {
		log.At = l.now()
	}
	caller, _ := CallerFromContext(ctx)
	l.logger.LogAttrs(ctx, slog.LevelInfo, "audit",
		slog.Bool("audit", true),
		slog.Int64("actor_id", caller.UserID),
		slog.String("actor", caller.Username),
		slog.String("role", caller.Role),
		slog.String("action", string(log.Action)),
		slog.String("entity", string(log.Entity)),
		slog.String("target", log.Target),
		slog.String("command", log.Command),
		slog.Time("at", log.At),
	)
	return nil
}
