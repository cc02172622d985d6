package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drr/internal/domain"
	"drr/internal/eventbus"
)

func token(t *testing.T, exp time.Time) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice@example.com",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func TestLoginPersistsAndHydrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	user := domain.User{ID: "u1", Email: "alice@example.com", IsSuperuser: true}

	a := New(path, nil)
	require.NoError(t, a.Login(Session{Token: token(t, time.Now().Add(time.Hour)), User: user}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	b := New(path, nil)
	require.NoError(t, b.Hydrate())
	assert.True(t, b.LoggedIn())
	assert.True(t, b.IsSuperuser())
	got, ok := b.User()
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, a.Token(), b.Token())
}

func TestHydrateDiscardsExpiredToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	a := New(path, nil)
	require.NoError(t, a.Login(Session{Token: token(t, time.Now().Add(-time.Minute))}))

	b := New(path, nil)
	require.NoError(t, b.Hydrate())
	assert.False(t, b.LoggedIn())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestHydrateKeepsOpaqueToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, New(path, nil).Login(Session{Token: "opaque"}))

	b := New(path, nil)
	require.NoError(t, b.Hydrate())
	assert.True(t, b.LoggedIn())
}

func TestHydrateWithoutFile(t *testing.T) {
	a := New(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.NoError(t, a.Hydrate())
	assert.False(t, a.LoggedIn())
}

func TestHydrateDiscardsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	a := New(path, nil)
	require.NoError(t, a.Hydrate())
	assert.False(t, a.LoggedIn())
}

func TestLogoutClearsAndPublishes(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	ended := make(chan eventbus.SessionEndedEvent, 1)
	bus.Subscribe(eventbus.EventSessionEnded, func(e eventbus.DomainEvent) {
		ended <- e.(eventbus.SessionEndedEvent)
	})

	path := filepath.Join(t.TempDir(), "session.json")
	a := New(path, bus)
	require.NoError(t, a.Login(Session{Token: "t"}))

	assert.True(t, a.Logout(true))
	assert.False(t, a.LoggedIn())
	assert.Empty(t, a.Token())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	select {
	case e := <-ended:
		assert.True(t, e.Forced)
	case <-time.After(time.Second):
		t.Fatal("SessionEndedEvent not published")
	}

	assert.False(t, a.Logout(true))
}

func TestSetUserRequiresSession(t *testing.T) {
	a := New("", nil)
	assert.ErrorIs(t, a.SetUser(domain.User{}), ErrNotLoggedIn)

	require.NoError(t, a.Login(Session{Token: "t"}))
	require.NoError(t, a.SetUser(domain.User{Firstname: "Alice"}))
	u, _ := a.User()
	assert.Equal(t, "Alice", u.DisplayName())
}

func TestLoginReportsUnwritableSessionFile(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	failures := make(chan eventbus.ErrorEvent, 1)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		failures <- e.(eventbus.ErrorEvent)
	})

	// The session directory is a regular file, so nothing can be written under it
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	a := New(filepath.Join(blocker, "session.json"), bus)

	require.NoError(t, a.Login(Session{Token: "t"}))
	assert.True(t, a.LoggedIn(), "the session stays usable in memory")

	select {
	case e := <-failures:
		assert.Equal(t, "Signed in, but the session could not be saved for next time", e.Message)
		assert.Error(t, e.Err)
	case <-time.After(time.Second):
		t.Fatal("ErrorEvent not published")
	}
}
