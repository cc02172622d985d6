package views

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drr/internal/banner"
	"drr/internal/domain"
	"drr/internal/table"
	"drr/internal/ui/forms"
	"drr/internal/ui/input/types"
	"drr/internal/ui/state"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func baseState(screen types.Screen) ViewState {
	return ViewState{
		Width:     120,
		Height:    40,
		Screen:    screen,
		Now:       now,
		User:      domain.User{Email: "ada@example.com", Firstname: "Ada", IsSuperuser: true},
		HelpModel: help.New(),
	}
}

func TestRenderDomains(t *testing.T) {
	s := baseState(types.ScreenDomains)
	s.Records = []domain.Record{
		{ID: 1, Name: "example.com", Type: domain.RecordDomain, RenewDate: domain.NewDate(now.AddDate(0, 0, 3))},
		{ID: 2, Name: "expired.org", Type: domain.RecordSSL, Issuer: "R3", RenewDate: domain.NewDate(now.AddDate(0, 0, -2))},
	}
	s.Page = table.PageInfo{TotalRows: 2, TotalPages: 1}
	s.TableView = table.View{Sort: table.SortState{Field: table.FieldName, Direction: table.Descending}, Query: "ex", PageSize: 25}

	out := stripANSI(NewRenderer().Render(s))
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "expired.org")
	assert.Contains(t, out, "Expired")
	assert.Contains(t, out, "1 Name ▼")
	assert.Contains(t, out, "[Filter: ex]")
	assert.Contains(t, out, "page 1/1")
	assert.Contains(t, out, "Ada (admin)")
	assert.Contains(t, out, "Users", "superusers see the users tab")
}

func TestShortFilterIsNotAdvertised(t *testing.T) {
	s := baseState(types.ScreenDomains)
	s.TableView = table.View{Query: "e"}
	out := stripANSI(NewRenderer().Render(s))
	assert.NotContains(t, out, "[Filter:")
	assert.Contains(t, out, "No domains or certificates yet.")
}

func TestRenderBanners(t *testing.T) {
	s := baseState(types.ScreenDomains)
	s.Banners = []banner.Banner{
		{ID: 1, Kind: banner.Success, Text: "Domain added"},
		{ID: 2, Kind: banner.Error, Text: "Not allowed", Repeats: 2},
	}
	out := stripANSI(NewRenderer().Render(s))
	assert.Contains(t, out, "✓ Domain added")
	assert.Contains(t, out, "✗ Not allowed (x3)")
}

func TestRenderPicker(t *testing.T) {
	p := state.NewPicker(domain.PlatformDiscord)
	p.SetGroups([]domain.Group{
		{ID: "g1", Name: "Ops", Channels: []domain.Channel{{ID: "c1", Name: "alerts"}, {ID: "c2", Name: "news", Kind: domain.ChannelAnnouncement}}},
		{ID: "g2", Name: "Quiet"},
	})
	p.Cursor = 1
	p.Toggle()

	out := stripANSI(NewRenderer().RenderPicker(p, 40))
	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, out, "Add Discord channels")
	assert.Contains(t, out, "[-] Ops 1/2")
	assert.Contains(t, out, "▶     [x] #alerts")
	assert.Contains(t, out, "[ ] #news (announcement)")
	assert.Contains(t, out, "Quiet no channels")
	assert.NotContains(t, out, "[ ] Quiet")
	assert.Contains(t, out, "1 selected")
}

func TestRenderPickerStates(t *testing.T) {
	r := NewRenderer()
	p := state.NewPicker(domain.PlatformTeams)
	assert.Contains(t, stripANSI(r.RenderPicker(p, 40)), "Loading channels...")

	p.SetGroups(nil)
	p.Message = "Install the app in a team first"
	assert.Contains(t, stripANSI(r.RenderPicker(p, 40)), "Install the app in a team first")
}

func TestRenderFormShowsValidation(t *testing.T) {
	f := forms.New("Create account",
		forms.Spec{Key: "email", Label: "Email", Kind: forms.KindEmail},
		forms.Spec{Key: "password", Label: "Password", Kind: forms.KindNewPassword},
		forms.Spec{Key: "confirm", Label: "Confirm password", Kind: forms.KindConfirm},
	)
	f.SetValue("email", "nope")
	f.SetValue("password", "abcdefg1")
	f.SetValue("confirm", "abcdefg2")
	require.False(t, f.Validate())

	out := stripANSI(NewRenderer().RenderForm(f))
	assert.Contains(t, out, "Enter a valid email address")
	assert.Contains(t, out, "■■■□□ weak")
	assert.Contains(t, out, "✗ Passwords do not match")
}

func TestPopupOverlayKeepsSize(t *testing.T) {
	r := NewRenderer()
	base := strings.Repeat(strings.Repeat("x", 40)+"\n", 19) + strings.Repeat("x", 40)
	out := r.popupRender.RenderPopupOverlay(base, "hello", 20, 40, r.styles.PopupBox)

	lines := strings.Split(stripANSI(out), "\n")
	assert.Len(t, lines, 20)
	assert.Contains(t, stripANSI(out), "hello")
	assert.True(t, strings.HasPrefix(lines[0], "xxxx"))
}

func TestHelpContentFollowsRole(t *testing.T) {
	admin := stripANSI(HelpContent(true))
	member := stripANSI(HelpContent(false))

	assert.Contains(t, admin, "Users")
	assert.Contains(t, admin, "add SSL")
	assert.NotContains(t, member, "add SSL")
	assert.Contains(t, member, "Channel picker")
	assert.Contains(t, member, "1 name")
}

func TestRecordDetails(t *testing.T) {
	nb := domain.Timestamp{Time: now.AddDate(0, -2, 0)}
	out := stripANSI(RecordDetails(domain.Record{
		ID: 9, Name: "example.com", Type: domain.RecordSSL, Issuer: "R3",
		RenewDate: domain.NewDate(now.AddDate(0, 0, 20)), NotBefore: &nb,
	}, now))
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "Warning (20 days)")
	assert.Contains(t, out, "Valid from")
	assert.Contains(t, out, "Issuer link    -")
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "abc  ", pad("abc", 5))
	assert.Equal(t, "abcd…", pad("abcdefgh", 5))
	assert.Equal(t, "", truncate("abc", 0))
}
