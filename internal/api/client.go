// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package api translates read and write intents into HTTP requests against the
// remote asset API. Every authenticated call reads the credential from the
// session store right before the request is built and fails with
// ErrUnauthenticated, without touching the network, when there is none.
package api // import "github.com/toeirei/assetdesk/internal/api"

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/toeirei/assetdesk/buildvars"
	"github.com/toeirei/assetdesk/internal/logging"
	"github.com/toeirei/assetdesk/internal/session"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Pagination is fixed; callers never choose a page.
const (
	FirstPage = 1
	PageSize  = 10
)

const defaultTimeout = 15 * time.Second

// Client talks to one API base URL on behalf of one session store.
type Client struct {
	baseURL    string
	store      session.Store
	httpClient *http.Client
	userAgent  string
	sessionTTL time.Duration
	validate   *validator.Validate
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. The client in use is copied
// first, so an *http.Client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithSessionTTL sets how long a credential obtained by Login is kept.
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.sessionTTL = ttl
	}
}

// New returns a Client for baseURL. A trailing slash on baseURL is ignored.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  "assetdesk/" + buildvars.VersionOrDefault("dev"),
		sessionTTL: session.DefaultTTL,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Authenticated reports whether the session store currently yields a credential.
func (c *Client) Authenticated() bool {
	_, ok := c.store.Get()
	return ok
}

type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

// do sends the request described by cl and returns the raw 2xx body.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	var token string
	if cl.auth {
		t, ok := c.store.Get()
		if !ok {
			logging.Debugf("api: %s skipped, no credential", cl.op)
			return nil, fmt.Errorf("%s: %w", cl.op, ErrUnauthenticated)
		}
		token = t
	}

	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encoding request: %w", cl.op, err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Errorf("api: %s %s failed: %v", cl.method, cl.path, err)
		return nil, fmt.Errorf("%s: %w", cl.op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	logging.Debugf("api: %s %s -> %d in %s", cl.method, cl.path, resp.StatusCode, time.Since(start))
	if err != nil {
		logging.Errorf("api: %s %s reading body: %v", cl.method, cl.path, err)
		return nil, fmt.Errorf("%s: reading response: %w", cl.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Method: cl.method, Path: cl.path, Code: resp.StatusCode, Body: trimBody(data)}
		logging.Errorf("api: %s", se)
		return nil, fmt.Errorf("%s: %w", cl.op, se)
	}
	return data, nil
}

func malformed(op string, cause error) error {
	if cause != nil {
		logging.Errorf("api: %s: unexpected data format: %v", op, cause)
		return fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, cause)
	}
	logging.Errorf("api: %s: unexpected data format", op)
	return fmt.Errorf("%s: %w", op, ErrMalformedResponse)
}

// getResults fetches path and decodes the "results" array of the envelope.
func getResults[T any](ctx context.Context, c *Client, op, path string, query url.Values) ([]T, error) {
	data, err := c.do(ctx, call{op: op, method: http.MethodGet, path: path, query: query, auth: true})
	if err != nil {
		return nil, err
	}
	var env struct {
		Results *[]T `json:"results"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, malformed(op, err)
	}
	if env.Results == nil {
		return nil, malformed(op, errors.New("missing results"))
	}
	out := *env.Results
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// validationFields lists the struct fields that failed validation.
func validationFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func (c *Client) validateStruct(v any) error {
	if err := c.validate.Struct(v); err != nil {
		return &InputError{Fields: validationFields(err)}
	}
	return nil
}
