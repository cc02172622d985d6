package api

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"drr/internal/domain"
	"drr/internal/session"
)

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

// Registration is the sign-up form
type Registration struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
}

// Verification is the result of following an email verification link
type Verification struct {
	Message           string `json:"message"`
	Success           bool   `json:"success"`
	NeedsPassword     bool   `json:"needs_password"`
	VerificationToken string `json:"verification_token,omitempty"`
}

// Login signs in and stores the new session
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	var tok tokenResponse
	body := map[string]string{
		"email":    strings.ToLower(strings.TrimSpace(email)),
		"password": password,
	}
	if err := c.post(ctx, "/auth/login", body, &tok); err != nil {
		return domain.User{}, err
	}
	return c.startSession(tok)
}

// Register creates an account and signs in
func (c *Client) Register(ctx context.Context, r Registration) (domain.User, error) {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	var tok tokenResponse
	if err := c.post(ctx, "/auth/register", r, &tok); err != nil {
		return domain.User{}, err
	}
	return c.startSession(tok)
}

// VerifyEmail consumes an email verification token
func (c *Client) VerifyEmail(ctx context.Context, token string) (Verification, error) {
	var v Verification
	err := c.get(ctx, "/auth/verify-email", url.Values{"token": {token}}, &v)
	return v, err
}

// SetPassword sets the first password of an invited user and signs in
func (c *Client) SetPassword(ctx context.Context, token, password string) (domain.User, error) {
	var tok tokenResponse
	body := map[string]string{"token": token, "password": password}
	if err := c.post(ctx, "/auth/set-password", body, &tok); err != nil {
		return domain.User{}, err
	}
	return c.startSession(tok)
}

// ForgotPassword requests a reset email. The backend answers the same way
// whether or not the address exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var m Message
	body := map[string]string{"email": strings.ToLower(strings.TrimSpace(email))}
	err := c.post(ctx, "/auth/forgot-password", body, &m)
	return m.Message, err
}

// ResetPassword sets a new password using a reset token
func (c *Client) ResetPassword(ctx context.Context, token, password string) (string, error) {
	var m Message
	body := map[string]string{"token": token, "password": password}
	err := c.post(ctx, "/auth/reset-password", body, &m)
	return m.Message, err
}

// Me fetches the signed-in user and refreshes the cached copy
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/auth/me", nil, &u); err != nil {
		return domain.User{}, err
	}
	if err := c.auth.SetUser(u); err != nil && !errors.Is(err, session.ErrNotLoggedIn) {
		c.log.WithError(err).Warn("failed to refresh cached user")
	}
	return u, nil
}

// Logout ends the session on the backend and locally. The local session is
// cleared even when the backend call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/auth/logout", nil, nil)
	if errors.Is(err, ErrSessionExpired) {
		return nil
	}
	c.auth.Logout(false)
	return err
}

func (c *Client) startSession(tok tokenResponse) (domain.User, error) {
	if tok.AccessToken == "" {
		return domain.User{}, &NetworkError{Op: "login", Err: errors.New("response has no access token")}
	}
	if err := c.auth.Login(session.Session{Token: tok.AccessToken, User: tok.User}); err != nil {
		return domain.User{}, errors.Wrap(err, "failed to store session")
	}
	return tok.User, nil
}
