// Package api is the HTTP client for the DRR backend. Every request goes
// through Client.do, which attaches credentials and turns a 401 into a
// forced logout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"drr/internal/eventbus"
	"drr/internal/session"
)

const requestIDHeader = "X-Request-ID"

// Options configures a Client
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Auth       *session.AuthContext
	Bus        eventbus.EventBus
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

// Client talks to the backend REST API
type Client struct {
	base *url.URL
	http *http.Client
	auth *session.AuthContext
	bus  eventbus.EventBus
	log  logrus.FieldLogger
}

// New creates a client. Auth is required; Bus may be nil.
func New(opts Options) (*Client, error) {
	if opts.Auth == nil {
		return nil, errors.New("api: auth context is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("api: invalid base URL %q", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, errors.Wrap(err, "api: cookie jar")
		}
		hc = &http.Client{Jar: jar, Timeout: opts.Timeout}
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Client{
		base: base,
		http: hc,
		auth: opts.Auth,
		bus:  opts.Bus,
		log:  log.WithField("component", "api"),
	}, nil
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) url(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends one request. body is JSON encoded when non-nil and out, when
// non-nil, receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := c.auth.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	// Sign-in and other anonymous calls answer 401 for bad credentials, not
	// for an expired session
	held := token != "" || c.auth.LoggedIn()

	log := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": reqID,
	})
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "elapsed": time.Since(start)})

	if resp.StatusCode == http.StatusUnauthorized && held {
		log.Warn("session rejected by backend")
		c.expireSession(path, token)
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Detail: parseDetail(data)}
		log.WithField("detail", apiErr.Detail).Info("request rejected")
		return apiErr
	}
	log.Debug("request completed")

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Op: "decode " + path, Err: err}
	}
	return nil
}

// expireSession clears the local session once, tells the backend to drop
// its cookie, and announces the expiry. Later 401s for the same session
// find nothing to clear and do nothing.
func (c *Client) expireSession(path, token string) {
	if !c.auth.Logout(true) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/auth/logout", nil), nil)
	if err == nil {
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		req.Header.Set(requestIDHeader, uuid.NewString())
		if resp, err := c.http.Do(req); err == nil {
			resp.Body.Close()
		} else {
			c.log.WithError(err).Debug("logout after expiry failed")
		}
	}

	if c.bus != nil {
		c.bus.Publish(eventbus.SessionExpiredEvent{Path: path})
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Message is the common {success, message} reply
type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
