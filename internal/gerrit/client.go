// Package gerrit is a minimal Gerrit REST client used to check that a
// resolved server configuration can actually reach and authenticate
// against its server.
package gerrit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/thoreinstein/gertty/internal/config"
	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/logging"
)

// xssiPrefix precedes every JSON body Gerrit returns.
var xssiPrefix = []byte(")]}'")

// DefaultTimeout bounds each request.
const DefaultTimeout = 30 * time.Second

// Client talks to one Gerrit server.
type Client struct {
	http     *resty.Client
	cfg      *config.Config
	logger   *slog.Logger
	loggedIn bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// NewClient builds a client for the server described by cfg. Requests
// use cfg's TLS policy and authenticate according to cfg.AuthType.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	tlsCfg, err := cfg.Network.TLSConfig()
	if err != nil {
		return nil, err
	}

	hc := resty.New().
		SetBaseURL(cfg.URL+"a/").
		SetTimeout(DefaultTimeout).
		SetTLSClientConfig(tlsCfg).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)
	hc.AddRetryCondition(retryCondition)

	switch cfg.AuthType {
	case "basic":
		hc.SetBasicAuth(cfg.Username, cfg.Password)
	case "digest":
		hc.SetDigestAuth(cfg.Username, cfg.Password)
	}

	c := &Client{http: hc, cfg: cfg, logger: logging.NewDiscard()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code == http.StatusBadGateway || code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout
}

// Error is a non-2xx response.
type Error struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Body)
}

// Unauthorized reports whether the server rejected the credentials.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// login performs the form login once per client; the session cookie is
// kept by the client's cookie jar.
func (c *Client) login(ctx context.Context) error {
	if c.cfg.AuthType != "form" || c.loggedIn {
		return nil
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"username": c.cfg.Username, "password": c.cfg.Password}).
		Post(c.cfg.URL + "login/")
	if err != nil {
		return errors.Wrap(err, "form login")
	}
	if resp.StatusCode() >= 400 {
		return &Error{Method: http.MethodPost, Path: "login/", Status: resp.StatusCode(), Body: resp.String()}
	}
	c.loggedIn = true
	return nil
}

// Get fetches path relative to "<url>a/" and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	if err := c.login(ctx); err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	c.logger.Debug("gerrit request", "path", path, "status", resp.StatusCode(), "duration", time.Since(start))

	if resp.StatusCode() >= 400 {
		return &Error{Method: http.MethodGet, Path: path, Status: resp.StatusCode(), Body: string(bytes.TrimSpace(resp.Body()))}
	}
	return Decode(resp.Body(), out)
}

// Decode strips Gerrit's XSSI guard and unmarshals body into out.
func Decode(body []byte, out any) error {
	body = bytes.TrimPrefix(bytes.TrimSpace(body), xssiPrefix)
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "decoding gerrit response")
	}
	return nil
}

// Version returns the server version.
func (c *Client) Version(ctx context.Context) (string, error) {
	var v string
	if err := c.Get(ctx, "config/server/version", &v); err != nil {
		return "", err
	}
	return v, nil
}

// Account is the authenticated user.
type Account struct {
	ID       int    `json:"_account_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Self returns the account the client authenticates as.
func (c *Client) Self(ctx context.Context) (*Account, error) {
	var a Account
	if err := c.Get(ctx, "accounts/self", &a); err != nil {
		return nil, err
	}
	return &a, nil
}
