// internal/app/features/passwordreset/handler.go
package passwordreset

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	passwordresetstore "github.com/dalemusser/apollo/internal/app/store/passwordresets"
	userstore "github.com/dalemusser/apollo/internal/app/store/users"
	"github.com/dalemusser/apollo/internal/app/system/auditlog"
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/inputval"
	"github.com/dalemusser/apollo/internal/app/system/mailer"
	"github.com/dalemusser/apollo/internal/app/system/normalize"
	"github.com/dalemusser/apollo/internal/app/system/ratelimit"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserStore is the subset of *userstore.Store used here.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, up userstore.Update) (models.User, error)
}

// ResetStore is the subset of *passwordresetstore.Store used here.
type ResetStore interface {
	Create(ctx context.Context, userID primitive.ObjectID, email string) (string, passwordresetstore.Reset, error)
	Get(ctx context.Context, token string) (passwordresetstore.Reset, error)
	Consume(ctx context.Context, token string) (passwordresetstore.Reset, error)
	TTL() time.Duration
}

// Messages shown by the back-office.
const (
	msgRequested    = "Se o e-mail estiver cadastrado, enviaremos um link para redefinir a senha."
	msgInvalidToken = "Invalid or expired reset token"
	msgReset        = "Your password has been reset. Login to continue."
	msgRateLimited  = "Muitas solicitações. Aguarde alguns minutos e tente novamente."
)

type Handler struct {
	Users    UserStore
	Resets   ResetStore
	Mail     mailer.Sender
	BaseURL  string // public web origin; links point at BaseURL/reset-password/{token}
	SiteName string
	AuditLog *auditlog.Logger
	Log      *zap.Logger

	// Limiter throttles reset requests per client IP and per email. Nil
	// disables throttling.
	Limiter *ratelimit.Limiter
}

func NewHandler(users UserStore, resets ResetStore, mail mailer.Sender, baseURL string, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Resets:   resets,
		Mail:     mail,
		BaseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		SiteName: "Apollo",
		AuditLog: audit,
		Log:      logger,
	}
}

// NewLimiter allows three reset requests per key, refilling one every five
// minutes.
func NewLimiter() *ratelimit.Limiter {
	return ratelimit.New(3, 5*time.Minute)
}

type requestInput struct {
	Email string `json:"email" validate:"required,mailaddr"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HandleRequest handles POST /auth/password-reset.
//
// Known and unknown emails get the same 202 answer so the endpoint does not
// reveal which accounts exist.
func (h *Handler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var in requestInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.Email = normalize.Email(in.Email)
	if fields, err := inputval.Struct(in); err != nil {
		h.Log.Error("password reset: validation", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	} else if fields != nil {
		httpjson.Invalid(w, fields)
		return
	}

	if h.Limiter != nil && !(h.Limiter.Allow("ip:"+ratelimit.ClientIP(r)) && h.Limiter.Allow("email:"+in.Email)) {
		h.Log.Warn("password reset: rate limited", zap.String("email", in.Email))
		httpjson.Error(w, http.StatusTooManyRequests, msgRateLimited)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "password reset request")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		h.Log.Info("password reset requested for unknown email", zap.String("email", in.Email))
		httpjson.Write(w, http.StatusAccepted, messageResponse{Message: msgRequested})
		return
	}
	if err != nil {
		h.Log.Error("password reset: user lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, _, err := h.Resets.Create(ctx, u.ID, u.Email)
	if err != nil {
		h.Log.Error("password reset: create token", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	msg := mailer.BuildPasswordResetEmail(mailer.PasswordResetEmailData{
		SiteName:  h.SiteName,
		Name:      u.Name,
		Link:      h.BaseURL + "/reset-password/" + token,
		ExpiresIn: mailer.FormatExpiry(h.Resets.TTL()),
	})
	msg.To = u.Email
	if err := h.Mail.Send(msg); err != nil {
		h.Log.Error("failed to send password reset email", zap.Error(err), zap.String("email", u.Email))
		httpjson.Error(w, http.StatusInternalServerError, "Não foi possível enviar o e-mail. Tente novamente.")
		return
	}

	h.AuditLog.PasswordResetRequested(ctx, r, u.ID, u.Email)
	h.Log.Info("password reset email sent", zap.String("user_id", u.ID.Hex()))
	httpjson.Write(w, http.StatusAccepted, messageResponse{Message: msgRequested})
}

type validateResponse struct {
	Valid     bool      `json:"valid"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HandleValidate handles GET /auth/password-reset/{token}. It does not use
// the token up.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(chi.URLParam(r, "token"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "password reset validate")
	defer cancel()

	rs, err := h.Resets.Get(ctx, token)
	if errors.Is(err, passwordresetstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, msgInvalidToken)
		return
	}
	if err != nil {
		h.Log.Error("password reset: token lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, http.StatusOK, validateResponse{Valid: true, Email: rs.Email, ExpiresAt: rs.ExpiresAt})
}

type resetInput struct {
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// HandleReset handles POST /auth/password-reset/{token}. The token is used
// up before the password changes, so a link works at most once even when
// two submissions race.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(chi.URLParam(r, "token"))

	var in resetInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields, err := inputval.Struct(in); err != nil {
		h.Log.Error("password reset: validation", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	} else if fields != nil {
		httpjson.Invalid(w, fields)
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.Log.Error("password reset: hash password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "password reset")
	defer cancel()

	rs, err := h.Resets.Consume(ctx, token)
	if errors.Is(err, passwordresetstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, msgInvalidToken)
		return
	}
	if err != nil {
		h.Log.Error("password reset: consume token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	_, err = h.Users.Update(ctx, rs.UserID, userstore.Update{PasswordHash: &hash})
	if errors.Is(err, userstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, msgInvalidToken)
		return
	}
	if err != nil {
		h.Log.Error("password reset: update user", zap.Error(err), zap.String("user_id", rs.UserID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.AuditLog.PasswordChanged(ctx, r, rs.UserID, rs.UserID)
	h.Log.Info("password reset", zap.String("user_id", rs.UserID.Hex()))
	httpjson.Write(w, http.StatusOK, messageResponse{Message: msgReset})
}
