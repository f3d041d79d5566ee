// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/apollo/internal/app/store/audit"
	"github.com/dalemusser/apollo/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for login, signup and password events.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for user, team and request mutations.
	// Same values as Auth.
	Admin string
}

// Recorder persists events. *audit.Store satisfies it.
type Recorder interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger provides convenience methods for logging audit events.
// It logs to the Recorder and to zap, as Config decides.
type Logger struct {
	store  Recorder
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store Recorder, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.TargetID != nil {
		fields = append(fields, zap.String("target_id", event.TargetID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op, so handlers may run without auditing.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func (l *Logger) authEvent(r *http.Request, eventType string, userID *primitive.ObjectID) audit.Event {
	return audit.Event{
		Category:  audit.CategoryAuth,
		EventType: eventType,
		UserID:    userID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful password login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	e := l.authEvent(r, audit.EventLoginSuccess, &userID)
	e.Success = true
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

// LoginFailedUserNotFound logs a login for an email nobody owns.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attemptedEmail string) {
	e := l.authEvent(r, audit.EventLoginFailedUserNotFound, nil)
	e.FailureReason = "user not found"
	e.Details = map[string]string{"attempted_email": attemptedEmail}
	l.Log(ctx, e)
}

// LoginFailedWrongPassword logs a login whose password did not match.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	e := l.authEvent(r, audit.EventLoginFailedWrongPassword, &userID)
	e.FailureReason = "wrong password"
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

// Signup logs a self-service account creation. inviterID is set when the
// signup came through an invitation link.
func (l *Logger) Signup(ctx context.Context, r *http.Request, userID primitive.ObjectID, inviterID *primitive.ObjectID) {
	e := l.authEvent(r, audit.EventSignup, &userID)
	e.Success = true
	if inviterID != nil {
		e.Details = map[string]string{"invited_by": inviterID.Hex()}
	}
	l.Log(ctx, e)
}

// PasswordChanged logs a password change made by actorID on userID.
func (l *Logger) PasswordChanged(ctx context.Context, r *http.Request, actorID, userID primitive.ObjectID) {
	e := l.authEvent(r, audit.EventPasswordChanged, &userID)
	e.ActorID = &actorID
	e.Success = true
	l.Log(ctx, e)
}

// PasswordResetRequested logs that a reset link was issued for userID.
func (l *Logger) PasswordResetRequested(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	e := l.authEvent(r, audit.EventPasswordResetRequested, &userID)
	e.Success = true
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

// --- Admin Events ---

// UserCreated logs when actorID creates targetUserID.
func (l *Logger) UserCreated(ctx context.Context, r *http.Request, actorID, targetUserID primitive.ObjectID) {
	l.userEvent(ctx, r, audit.EventUserCreated, actorID, targetUserID, nil)
}

// UserUpdated logs an edit. fieldsChanged is a comma-separated list of JSON
// field names.
func (l *Logger) UserUpdated(ctx context.Context, r *http.Request, actorID, targetUserID primitive.ObjectID, fieldsChanged string) {
	l.userEvent(ctx, r, audit.EventUserUpdated, actorID, targetUserID, map[string]string{"fields_changed": fieldsChanged})
}

// UserDeleted logs when actorID deletes targetUserID.
func (l *Logger) UserDeleted(ctx context.Context, r *http.Request, actorID, targetUserID primitive.ObjectID) {
	l.userEvent(ctx, r, audit.EventUserDeleted, actorID, targetUserID, nil)
}

func (l *Logger) userEvent(ctx context.Context, r *http.Request, eventType string, actorID, targetUserID primitive.ObjectID, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		UserID:    &targetUserID,
		ActorID:   &actorID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

// Changed logs a team or request mutation. eventType is one of the
// audit.EventTeam* or audit.EventRequest* constants.
func (l *Logger) Changed(ctx context.Context, r *http.Request, eventType string, actorID, targetID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   &actorID,
		TargetID:  &targetID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}
