package domain

import "time"

// RecordType distinguishes domain registrations from SSL certificates
type RecordType string

const (
	RecordDomain RecordType = "DOMAIN"
	RecordSSL    RecordType = "SSL"
)

// Record is a monitored domain or SSL certificate as returned by GET /domains/
type Record struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Type       RecordType `json:"type"`
	Issuer     string     `json:"issuer"`
	IssuerLink string     `json:"issuer_link,omitempty"`
	RenewDate  Date       `json:"renew_date"`
	NotBefore  *Timestamp `json:"not_before,omitempty"`
	CreatedAt  Timestamp  `json:"created_at"`
	UpdatedAt  Timestamp  `json:"updated_at"`
}

// User is the account blob mirrored into the local session for display.
// It is never used to make authorization decisions.
type User struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Firstname   string       `json:"firstname"`
	Lastname    string       `json:"lastname"`
	Position    string       `json:"position,omitempty"`
	CompanyID   string       `json:"company_id,omitempty"`
	CompanyName string       `json:"company_name,omitempty"`
	Verified    Verification `json:"verified"`
	IsSuperuser bool         `json:"is_superuser"`

	// Per-channel notification status: disabled, enabled, verifying, verified
	Notifications string `json:"notifications,omitempty"`
	Slack         string `json:"slack,omitempty"`
	Teams         string `json:"teams,omitempty"`
	Discord       string `json:"discord,omitempty"`
	Telegram      string `json:"telegram,omitempty"`
}

// DisplayName returns "First Last", falling back to the email
func (u User) DisplayName() string {
	name := u.Firstname
	if u.Lastname != "" {
		if name != "" {
			name += " "
		}
		name += u.Lastname
	}
	if name == "" {
		return u.Email
	}
	return name
}

// Platform identifies a chat platform used as a notification target
type Platform string

const (
	PlatformSlack    Platform = "slack"
	PlatformDiscord  Platform = "discord"
	PlatformTeams    Platform = "teams"
	PlatformTelegram Platform = "telegram"
)

// Platforms lists every platform in display order
var Platforms = []Platform{PlatformSlack, PlatformDiscord, PlatformTeams, PlatformTelegram}

// Title returns the human readable platform name
func (p Platform) Title() string {
	switch p {
	case PlatformSlack:
		return "Slack"
	case PlatformDiscord:
		return "Discord"
	case PlatformTeams:
		return "Microsoft Teams"
	case PlatformTelegram:
		return "Telegram"
	default:
		return string(p)
	}
}

// HasChannelPicker reports whether the platform exposes groups of channels to pick from
func (p Platform) HasChannelPicker() bool {
	return p == PlatformSlack || p == PlatformDiscord || p == PlatformTeams
}

// Integration is a stored link between the account and one destination
// (a DM recipient or a channel) on a chat platform
type Integration struct {
	ID          int64
	Platform    Platform
	GroupID     string // workspace, guild or team; empty for DMs
	GroupName   string
	ChannelID   string
	ChannelName string
	Username    string
	Status      string
	CreatedAt   time.Time
}

// IsDirectMessage reports whether the integration targets a DM rather than a channel
func (i Integration) IsDirectMessage() bool {
	return i.GroupID == ""
}

// Destination describes where notifications go
func (i Integration) Destination() string {
	if i.IsDirectMessage() {
		if i.Username != "" {
			return "DM @" + i.Username
		}
		return "Direct message"
	}
	if i.GroupName != "" {
		return i.GroupName + " / #" + i.ChannelName
	}
	return "#" + i.ChannelName
}

// ChannelKind is the kind of a selectable channel
type ChannelKind string

const (
	ChannelText         ChannelKind = "text"
	ChannelPublic       ChannelKind = "public"
	ChannelPrivate      ChannelKind = "private"
	ChannelAnnouncement ChannelKind = "announcement"
)

// Channel is one selectable channel inside a Group
type Channel struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Kind ChannelKind `json:"type"`
}

// Group is a Discord guild, Microsoft Team or Slack workspace.
// It is immutable for the lifetime of one picker session.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Channels    []Channel `json:"channels"`
	OwnedByUser bool      `json:"owner"`
}

// ChannelSelection is the denormalized snapshot of one picked channel
type ChannelSelection struct {
	GroupID     string
	GroupName   string
	ChannelID   string
	ChannelName string
}
