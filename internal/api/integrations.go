package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"drr/internal/domain"
)

// ErrNoChannelPicker is returned for platforms without selectable channels
var ErrNoChannelPicker = errors.New("platform has no channel picker")

// OAuthURL is the authorization link for connecting a platform account
type OAuthURL struct {
	URL   string `json:"oauth_url"`
	State string `json:"state"`
}

// StartLink is the Telegram deep link that binds the bot to the account
type StartLink struct {
	Link    string `json:"start_link"`
	BotName string `json:"bot_name"`
}

// GroupList is the result of listing the groups a picker can show.
// Message carries the backend's guidance when the list is empty.
type GroupList struct {
	Groups  []domain.Group
	Message string
}

// AddChannelsResult summarises a channel submission
type AddChannelsResult struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	AddedCount     int      `json:"added_count"`
	FailedChannels []string `json:"failed_channels"`
}

func platformPath(p domain.Platform, rest string) string {
	return "/" + string(p) + rest
}

// OAuthLink requests an authorization URL for p. Telegram uses StartLink instead.
func (c *Client) OAuthLink(ctx context.Context, p domain.Platform) (OAuthURL, error) {
	var out OAuthURL
	err := c.get(ctx, platformPath(p, "/oauth/url"), nil, &out)
	return out, err
}

func (c *Client) TelegramStartLink(ctx context.Context) (StartLink, error) {
	var out StartLink
	err := c.get(ctx, "/telegram/start/link", nil, &out)
	return out, err
}

// DiscordInviteURL returns the link that adds the bot to a server
func (c *Client) DiscordInviteURL(ctx context.Context) (string, error) {
	var out struct {
		InviteURL string `json:"invite_url"`
	}
	err := c.get(ctx, "/discord/bot/invite-url", nil, &out)
	return out.InviteURL, err
}

// Integrations lists the stored integrations for one platform
func (c *Client) Integrations(ctx context.Context, p domain.Platform) ([]domain.Integration, error) {
	switch p {
	case domain.PlatformSlack:
		var raw []slackIntegration
		if err := c.get(ctx, "/slack/integrations", nil, &raw); err != nil {
			return nil, err
		}
		return convert(raw), nil
	case domain.PlatformDiscord:
		var raw []discordIntegration
		if err := c.get(ctx, "/discord/integrations", nil, &raw); err != nil {
			return nil, err
		}
		return convert(raw), nil
	case domain.PlatformTeams:
		var raw []teamsIntegration
		if err := c.get(ctx, "/teams/integrations", nil, &raw); err != nil {
			return nil, err
		}
		return convert(raw), nil
	case domain.PlatformTelegram:
		var raw []telegramIntegration
		if err := c.get(ctx, "/telegram/integrations", nil, &raw); err != nil {
			return nil, err
		}
		return convert(raw), nil
	default:
		return nil, errors.Errorf("unknown platform %q", p)
	}
}

// TestIntegration sends a test notification through the integration
func (c *Client) TestIntegration(ctx context.Context, p domain.Platform, id int64) (Message, error) {
	var m Message
	err := c.post(ctx, platformPath(p, fmt.Sprintf("/integrations/%d/test", id)), nil, &m)
	return m, err
}

// VerifyIntegration activates an integration after its test message arrived
func (c *Client) VerifyIntegration(ctx context.Context, p domain.Platform, id int64) (Message, error) {
	var m Message
	err := c.post(ctx, platformPath(p, fmt.Sprintf("/integrations/%d/verify", id)), nil, &m)
	return m, err
}

func (c *Client) DeleteIntegration(ctx context.Context, p domain.Platform, id int64) error {
	return c.delete(ctx, platformPath(p, fmt.Sprintf("/integrations/%d", id)), nil)
}

// AvailableGroups lists the groups and channels the picker for p may offer.
// Channels that are already integrated are left out by the backend.
func (c *Client) AvailableGroups(ctx context.Context, p domain.Platform) (GroupList, error) {
	var out struct {
		Guilds     []domain.Group `json:"guilds"`
		Teams      []domain.Group `json:"teams"`
		Workspaces []domain.Group `json:"workspaces"`
		Message    string         `json:"message"`
		Error      string         `json:"error"`
	}

	var path string
	switch p {
	case domain.PlatformDiscord:
		path = "/discord/available-guilds"
	case domain.PlatformTeams:
		path = "/teams/available-teams"
	case domain.PlatformSlack:
		path = "/slack/available-channels"
	default:
		return GroupList{}, ErrNoChannelPicker
	}
	if err := c.get(ctx, path, nil, &out); err != nil {
		return GroupList{}, err
	}
	if out.Error != "" && out.Message == "" {
		out.Message = out.Error
	}

	groups := out.Guilds
	switch {
	case len(out.Teams) > 0:
		groups = out.Teams
	case len(out.Workspaces) > 0:
		groups = out.Workspaces
	}
	return GroupList{Groups: groups, Message: out.Message}, nil
}

// AddChannels creates one integration per selected channel. The group keys
// of the payload depend on the platform.
func (c *Client) AddChannels(ctx context.Context, p domain.Platform, picked []domain.ChannelSelection) (AddChannelsResult, error) {
	var idKey, nameKey string
	switch p {
	case domain.PlatformDiscord:
		idKey, nameKey = "guild_id", "guild_name"
	case domain.PlatformTeams:
		idKey, nameKey = "team_id", "team_name"
	case domain.PlatformSlack:
		idKey, nameKey = "workspace_id", "workspace_name"
	default:
		return AddChannelsResult{}, ErrNoChannelPicker
	}

	channels := make([]map[string]string, 0, len(picked))
	for _, s := range picked {
		channels = append(channels, map[string]string{
			idKey:          s.GroupID,
			nameKey:        s.GroupName,
			"channel_id":   s.ChannelID,
			"channel_name": s.ChannelName,
		})
	}

	var out AddChannelsResult
	err := c.post(ctx, platformPath(p, "/add-channels"), map[string]any{"channels": channels}, &out)
	return out, err
}

type integrationConverter interface {
	integration() domain.Integration
}

func convert[T integrationConverter](raw []T) []domain.Integration {
	out := make([]domain.Integration, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.integration())
	}
	return out
}

type slackIntegration struct {
	ID            int64            `json:"id"`
	WorkspaceID   string           `json:"workspace_id"`
	WorkspaceName string           `json:"workspace_name"`
	SlackUserID   string           `json:"slack_user_id"`
	ChannelID     string           `json:"channel_id"`
	Status        string           `json:"status"`
	CreatedAt     domain.Timestamp `json:"created_at"`
}

func (r slackIntegration) integration() domain.Integration {
	i := domain.Integration{
		ID:        r.ID,
		Platform:  domain.PlatformSlack,
		Username:  r.SlackUserID,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.Time,
	}
	if r.ChannelID != "" {
		i.GroupID, i.GroupName = r.WorkspaceID, r.WorkspaceName
		i.ChannelID, i.ChannelName = r.ChannelID, r.ChannelID
	}
	return i
}

type discordIntegration struct {
	ID            int64            `json:"id"`
	DiscordUserID string           `json:"discord_user_id"`
	GuildID       string           `json:"guild_id"`
	GuildName     string           `json:"guild_name"`
	ChannelID     string           `json:"channel_id"`
	ChannelName   string           `json:"channel_name"`
	Username      string           `json:"username"`
	GlobalName    string           `json:"global_name"`
	Status        string           `json:"status"`
	CreatedAt     domain.Timestamp `json:"created_at"`
}

func (r discordIntegration) integration() domain.Integration {
	name := r.Username
	if name == "" {
		name = r.GlobalName
	}
	return domain.Integration{
		ID:          r.ID,
		Platform:    domain.PlatformDiscord,
		GroupID:     r.GuildID,
		GroupName:   r.GuildName,
		ChannelID:   r.ChannelID,
		ChannelName: r.ChannelName,
		Username:    name,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt.Time,
	}
}

type teamsIntegration struct {
	ID          int64            `json:"id"`
	TeamID      string           `json:"team_id"`
	TeamName    string           `json:"team_name"`
	ChannelID   string           `json:"channel_id"`
	ChannelName string           `json:"channel_name"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	Status      string           `json:"status"`
	CreatedAt   domain.Timestamp `json:"created_at"`
}

func (r teamsIntegration) integration() domain.Integration {
	name := r.Username
	if name == "" {
		name = r.Email
	}
	return domain.Integration{
		ID:          r.ID,
		Platform:    domain.PlatformTeams,
		GroupID:     r.TeamID,
		GroupName:   r.TeamName,
		ChannelID:   r.ChannelID,
		ChannelName: r.ChannelName,
		Username:    name,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt.Time,
	}
}

type telegramIntegration struct {
	ID        int64            `json:"id"`
	ChannelID int64            `json:"channel_id"`
	Username  string           `json:"username"`
	FirstName string           `json:"first_name"`
	Status    string           `json:"status"`
	CreatedAt domain.Timestamp `json:"created_at"`
}

func (r telegramIntegration) integration() domain.Integration {
	name := r.Username
	if name == "" {
		name = r.FirstName
	}
	return domain.Integration{
		ID:        r.ID,
		Platform:  domain.PlatformTelegram,
		ChannelID: strconv.FormatInt(r.ChannelID, 10),
		Username:  name,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.Time,
	}
}
