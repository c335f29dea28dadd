// internal/app/system/apiclient/client.go
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client is the single gateway to the attendance API. It attaches the
// session's bearer token, tags every call with a request id and decodes the
// response envelope. It never retries.
type Client struct {
	base      *url.URL
	http      *http.Client
	log       *zap.Logger
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for per-request logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUserAgent sets the User-Agent header sent upstream.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout sets the overall per-request timeout of the default http client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api base url %q: missing host", baseURL)
	}

	c := &Client{
		base:      u,
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       zap.NewNop(),
		userAgent: "attendhub",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Get issues GET path?query and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, sess *models.Session, path string, query url.Values, out any) error {
	return c.do(ctx, sess, http.MethodGet, path, query, nil, out)
}

// Post issues POST path with a JSON body.
func (c *Client) Post(ctx context.Context, sess *models.Session, path string, body, out any) error {
	return c.do(ctx, sess, http.MethodPost, path, nil, body, out)
}

// Put issues PUT path with a JSON body.
func (c *Client) Put(ctx context.Context, sess *models.Session, path string, body, out any) error {
	return c.do(ctx, sess, http.MethodPut, path, nil, body, out)
}

// Delete issues DELETE path.
func (c *Client) Delete(ctx context.Context, sess *models.Session, path string, out any) error {
	return c.do(ctx, sess, http.MethodDelete, path, nil, nil, out)
}

// Ping checks that the API host answers HTTP at all. Any status counts as
// reachable; only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String()+"/", nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Method: http.MethodGet, Path: "/", Err: err}
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
	return nil
}

// CloseIdleConnections drops pooled keep-alive connections. Used at shutdown.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

func (c *Client) endpoint(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	s := c.base.String() + path
	if len(query) > 0 {
		s += "?" + query.Encode()
	}
	return s
}

func (c *Client) do(ctx context.Context, sess *models.Session, method, path string, query url.Values, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), rdr)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.HasToken() {
		(&oauth2.Token{AccessToken: sess.Token, TokenType: "Bearer"}).SetAuthHeader(req)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
		zap.Duration("elapsed", time.Since(start)))

	var env rawEnvelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ae := &APIError{Status: resp.StatusCode, Method: method, Path: path}
		if decodeErr == nil && env.Error != nil {
			ae.Code = env.Error.Code
			ae.Message = env.Error.Message
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.log.Info("api rejected session",
				zap.String("method", method),
				zap.String("path", path),
				zap.String("request_id", reqID))
		}
		return ae
	}

	if decodeErr != nil {
		return fmt.Errorf("decode %s %s envelope: %w", method, path, decodeErr)
	}
	if !env.Success {
		ae := &APIError{Status: resp.StatusCode, Method: method, Path: path}
		if env.Error != nil {
			ae.Code = env.Error.Code
			ae.Message = env.Error.Message
		}
		return ae
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}
