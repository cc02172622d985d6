package api

import (
	"context"
	"net/url"
	"strings"

	"drr/internal/domain"
)

// NewUser is the form a superuser fills to invite a colleague
type NewUser struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	Position    string `json:"position,omitempty"`
	CompanyID   string `json:"company_id"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UserUpdate carries the fields to change; nil fields are left alone
type UserUpdate struct {
	Firstname   *string `json:"firstname,omitempty"`
	Lastname    *string `json:"lastname,omitempty"`
	Position    *string `json:"position,omitempty"`
	Email       *string `json:"email,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

// Users lists every user of the company (superuser only)
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.get(ctx, "/users/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifiedUsers lists users who completed email verification
func (c *Client) VerifiedUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.get(ctx, "/users/verified", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser invites a user. The backend sends the verification email.
func (c *Client) CreateUser(ctx context.Context, u NewUser) (domain.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	var out domain.User
	err := c.post(ctx, "/users/", u, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, u UserUpdate) (domain.User, error) {
	var out domain.User
	err := c.put(ctx, "/users/"+url.PathEscape(id), u, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/users/"+url.PathEscape(id), nil)
}

// SendVerification re-sends the verification email to a user
func (c *Client) SendVerification(ctx context.Context, id string) (string, error) {
	var m Message
	err := c.post(ctx, "/users/"+url.PathEscape(id)+"/send-verification", nil, &m)
	return m.Message, err
}
