package gateway

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

	"github.com/rs/zerolog"

	"github.com/five82/ticklist/internal/todo"
)

// Gateway persists to-do items. It is implemented by *Client and can be
// replaced with a fake in tests.
type Gateway interface {
	List(ctx context.Context) ([]todo.Item, error)
	Create(ctx context.Context, fields todo.Fields) (todo.Item, error)
	Update(ctx context.Context, id todo.ID, fields todo.Fields) (todo.Item, error)
	Delete(ctx context.Context, id todo.ID) error
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// Observer is told about every request the client performs.
type Observer interface {
	RequestStarted()
	RequestFinished(err error)
}

// Client talks to a REST /todo collection.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger
	observer  Observer
}

const (
	resourcePath     = "/todo"
	defaultUserAgent = "ticklist/0.1"
	// DefaultTimeout bounds a single request when no timeout is configured.
	DefaultTimeout = 10 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a logger used for failed requests.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithObserver registers an observer for request outcomes.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for the API rooted at apiURL. The /todo
// resource is resolved below the URL's path.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]todo.Item, error) {
	var payload listResponse
	if err := c.do(ctx, "list", http.MethodGet, "", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// Create posts a new item and returns it with its server identity.
func (c *Client) Create(ctx context.Context, fields todo.Fields) (todo.Item, error) {
	var created todo.Item
	if err := c.do(ctx, "create", http.MethodPost, "", fields, &created); err != nil {
		return todo.Item{}, err
	}
	return created, nil
}

// Update replaces the mutable fields of item id.
func (c *Client) Update(ctx context.Context, id todo.ID, fields todo.Fields) (todo.Item, error) {
	if id.IsZero() {
		return todo.Item{}, &RequestError{Op: "update", Method: http.MethodPut, Path: resourcePath, Err: errMissingID}
	}
	var updated todo.Item
	if err := c.do(ctx, "update", http.MethodPut, id.String(), fields, &updated); err != nil {
		return todo.Item{}, err
	}
	return updated, nil
}

// Delete removes item id.
func (c *Client) Delete(ctx context.Context, id todo.ID) error {
	if id.IsZero() {
		return &RequestError{Op: "delete", Method: http.MethodDelete, Path: resourcePath, Err: errMissingID}
	}
	return c.do(ctx, "delete", http.MethodDelete, id.String(), nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, id string, body, dest any) (err error) {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := c.resource(id)
	if c.observer != nil {
		c.observer.RequestStarted()
		defer func() { c.observer.RequestFinished(err) }()
	}
	status, err := c.doURL(ctx, method, rel, body, dest)
	if err != nil {
		reqErr := &RequestError{Op: op, Method: method, Path: rel.Path, Status: status, Err: err}
		c.log.Warn().
			Str("op", op).
			Str("method", method).
			Str("path", rel.Path).
			Int("status", status).
			Err(err).
			Msg("gateway request failed")
		return reqErr
	}
	return nil
}

// resource keeps the decoded id in Path and its escaped form in RawPath so
// reserved characters in an id stay inside one path segment.
func (c *Client) resource(id string) *url.URL {
	base := strings.TrimSuffix(c.baseURL.Path, "/") + resourcePath
	if id == "" {
		return &url.URL{Path: base}
	}
	rawBase := strings.TrimSuffix(c.baseURL.EscapedPath(), "/") + resourcePath
	return &url.URL{
		Path:    base + "/" + id,
		RawPath: rawBase + "/" + url.PathEscape(id),
	}
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) (int, error) {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return resp.StatusCode, fmt.Errorf("server responded %s", http.StatusText(resp.StatusCode))
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// listResponse accepts a bare array or an {"items": [...]} wrapper.
type listResponse struct {
	Items []todo.Item
}

func (r *listResponse) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Items []todo.Item `json:"items"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		r.Items = wrapped.Items
		return nil
	}
	return json.Unmarshal(data, &r.Items)
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
