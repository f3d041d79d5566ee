// internal/app/apiclient/apollo.go
package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/apollo/internal/domain/models"
)

// Session is returned by Login and Signup.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// TeamSummary is the slice of the user's team shown with their info.
type TeamSummary struct {
	Name       string `json:"name"`
	PlanStatus string `json:"plan_status"`
}

// UserInfo is the signed-in user as GET /user/info reports it.
type UserInfo struct {
	models.User
	Team      TeamSummary `json:"team"`
	IsProPlan bool        `json:"isProPlan"`
}

// InvitationLink is the caller's referral link.
type InvitationLink struct {
	Link  string `json:"link"`
	Token string `json:"token"`
}

type InvitedUser struct {
	ID   string `json:"id"`
	User struct {
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"user"`
}

type InvitedUsers struct {
	Items []InvitedUser `json:"items"`
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var s Session
	in := map[string]string{"email": email, "password": password}
	err := c.Do(ctx, http.MethodPost, "/auth/login", in, &s)
	return s, err
}

func (c *Client) Signup(ctx context.Context, p SignupPayload) (Session, error) {
	var s Session
	err := c.Do(ctx, http.MethodPost, "/auth/signup", p, &s)
	return s, err
}

func (c *Client) UserInfo(ctx context.Context) (UserInfo, error) {
	var u UserInfo
	err := c.Do(ctx, http.MethodGet, "/user/info", nil, &u)
	return u, err
}

// Invitation returns the caller's invitation, creating it on first use.
func (c *Client) Invitation(ctx context.Context) (InvitationLink, error) {
	var l InvitationLink
	err := c.Do(ctx, http.MethodGet, "/invitation", nil, &l)
	return l, err
}

func (c *Client) InvitedUsers(ctx context.Context) (InvitedUsers, error) {
	var out InvitedUsers
	err := c.Do(ctx, http.MethodGet, "/user/invited", nil, &out)
	return out, err
}

func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	var out []models.Plan
	err := c.Do(ctx, http.MethodGet, "/plans", nil, &out)
	return out, err
}

func (c *Client) Users() *Resource[models.User, UserCreate, UserUpdate] {
	return NewResource[models.User, UserCreate, UserUpdate](c, "/user")
}

func (c *Client) Teams() *Resource[models.Team, TeamPayload, TeamPayload] {
	return NewResource[models.Team, TeamPayload, TeamPayload](c, "/team")
}

func (c *Client) Requests() *Resource[models.Request, RequestPayload, RequestPayload] {
	return NewResource[models.Request, RequestPayload, RequestPayload](c, "/request")
}

// Message is the body of endpoints that only report an outcome.
type Message struct {
	Message string `json:"message"`
}

// ResetToken is a password reset link as GET /auth/password-reset/{token}
// reports it.
type ResetToken struct {
	Valid     bool      `json:"valid"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RequestPasswordReset asks for a reset link. The answer is the same whether
// or not the email has an account.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (Message, error) {
	var m Message
	err := c.Do(ctx, http.MethodPost, "/auth/password-reset", map[string]string{"email": email}, &m)
	return m, err
}

// CheckResetToken reports whether token is still usable without using it up.
func (c *Client) CheckResetToken(ctx context.Context, token string) (ResetToken, error) {
	var rt ResetToken
	err := c.Do(ctx, http.MethodGet, "/auth/password-reset/"+url.PathEscape(token), nil, &rt)
	return rt, err
}

// ResetPassword sets a new password with a reset token. The token works once.
func (c *Client) ResetPassword(ctx context.Context, token, password, confirmPassword string) (Message, error) {
	var m Message
	in := map[string]string{"password": password, "confirmPassword": confirmPassword}
	err := c.Do(ctx, http.MethodPost, "/auth/password-reset/"+url.PathEscape(token), in, &m)
	return m, err
}
