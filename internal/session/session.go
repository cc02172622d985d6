// Package session holds the signed-in account for the lifetime of the
// program and mirrors it to a file so a restart keeps the user signed in.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"drr/internal/domain"
	"drr/internal/eventbus"
)

// ErrNotLoggedIn is returned when an operation needs a session and there is none
var ErrNotLoggedIn = errors.New("not logged in")

// Session is the persisted sign-in state
type Session struct {
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
	SavedAt time.Time   `json:"saved_at"`
}

// AuthContext owns the current session. It is safe for concurrent use.
type AuthContext struct {
	mu      sync.RWMutex
	current *Session
	path    string
	bus     eventbus.EventBus
	log     logrus.FieldLogger
	nowFunc func() time.Time
}

// New creates an empty context persisting to path. An empty path keeps the
// session in memory only. bus may be nil.
func New(path string, bus eventbus.EventBus) *AuthContext {
	return &AuthContext{
		path:    path,
		bus:     bus,
		log:     logrus.WithField("component", "session"),
		nowFunc: time.Now,
	}
}

// Hydrate loads the persisted session. A missing file is not an error.
// A session whose token has expired is discarded along with its file.
func (a *AuthContext) Hydrate() error {
	if a.path == "" {
		return nil
	}
	data, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read session file")
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		a.log.WithError(err).Warn("discarding unreadable session file")
		return a.removeFile()
	}
	if s.Token == "" || a.expired(s.Token) {
		a.log.Info("stored session expired")
		return a.removeFile()
	}

	a.mu.Lock()
	a.current = &s
	a.mu.Unlock()
	return nil
}

// Login stores s as the current session and persists it. A session that
// cannot be written stays usable in memory; the failure is published as an
// ErrorEvent.
func (a *AuthContext) Login(s Session) error {
	if s.SavedAt.IsZero() {
		s.SavedAt = a.nowFunc()
	}

	a.mu.Lock()
	a.current = &s
	a.mu.Unlock()

	if err := a.save(s); err != nil {
		a.report("Signed in, but the session could not be saved for next time", err)
	}
	return nil
}

// SetUser replaces the cached user blob, e.g. after GET /auth/me
func (a *AuthContext) SetUser(u domain.User) error {
	a.mu.Lock()
	if a.current == nil {
		a.mu.Unlock()
		return ErrNotLoggedIn
	}
	a.current.User = u
	s := *a.current
	a.mu.Unlock()

	return a.save(s)
}

// Current returns a copy of the session, if any
func (a *AuthContext) Current() (Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return Session{}, false
	}
	return *a.current, true
}

func (a *AuthContext) User() (domain.User, bool) {
	s, ok := a.Current()
	return s.User, ok
}

func (a *AuthContext) Token() string {
	s, _ := a.Current()
	return s.Token
}

// IsSuperuser reports the cached flag. Display only: the backend enforces access.
func (a *AuthContext) IsSuperuser() bool {
	s, ok := a.Current()
	return ok && s.User.IsSuperuser
}

func (a *AuthContext) LoggedIn() bool {
	_, ok := a.Current()
	return ok
}

// Logout clears the session from memory and disk. It reports whether a
// session was present. forced marks a logout caused by the backend.
func (a *AuthContext) Logout(forced bool) bool {
	a.mu.Lock()
	had := a.current != nil
	a.current = nil
	a.mu.Unlock()

	if err := a.removeFile(); err != nil {
		a.report("The saved session could not be removed", err)
	}
	if had && a.bus != nil {
		a.bus.Publish(eventbus.SessionEndedEvent{Forced: forced})
	}
	return had
}

// expired reports whether the token carries an exp claim in the past.
// Opaque tokens are left for the backend to judge.
func (a *AuthContext) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		a.log.WithError(err).Debug("session token is not a readable JWT")
		return false
	}
	return !claims.VerifyExpiresAt(a.nowFunc().Unix(), false)
}

// report logs a persistence failure and tells the UI about it
func (a *AuthContext) report(message string, err error) {
	a.log.WithError(err).Warn(message)
	if a.bus != nil {
		a.bus.Publish(eventbus.ErrorEvent{Message: message, Err: err})
	}
}

func (a *AuthContext) save(s Session) error {
	if a.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode session")
	}
	if err := os.MkdirAll(filepath.Dir(a.path), 0o700); err != nil {
		return errors.Wrap(err, "failed to create session directory")
	}
	if err := os.WriteFile(a.path, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write session file")
	}
	return nil
}

func (a *AuthContext) removeFile() error {
	if a.path == "" {
		return nil
	}
	if err := os.Remove(a.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove session file")
	}
	return nil
}
