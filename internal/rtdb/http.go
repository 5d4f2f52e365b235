package rtdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client implements Database over the REST API.
type Client struct {
	baseURL    string
	auth       Authorizer
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAuth sets the credentials attached to every request.
func WithAuth(a Authorizer) Option {
	return func(c *Client) { c.auth = a }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a client for the database at baseURL
// (e.g. "https://example-default-rtdb.firebaseio.com").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Database = (*Client)(nil)

// BaseURL returns the database root the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// HasAuth reports whether credentials are configured.
func (c *Client) HasAuth() bool { return c.auth != nil }

func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

// Post appends body under path and returns the generated push key.
func (c *Client) Post(ctx context.Context, path string, body any) (string, error) {
	raw, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", err
	}
	var resp struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decoding push response: %w", err)
	}
	return resp.Name, nil
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

// --- Rules ---

const rulesPath = "/.settings/rules.json"

func (c *Client) GetRules(ctx context.Context) (json.RawMessage, error) {
	return c.doURL(ctx, http.MethodGet, rulesPath, nil)
}

func (c *Client) PutRules(ctx context.Context, rules json.RawMessage) error {
	_, err := c.doURL(ctx, http.MethodPut, rulesPath, rules)
	return err
}

// --- internal helpers ---

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	p, err := escapePath(path)
	if err != nil {
		return nil, err
	}
	return c.doURL(ctx, method, p, body)
}

// doURL performs the request against an already escaped path and returns the
// raw response body. Bodies that are already json.RawMessage or []byte are
// sent as-is.
func (c *Client) doURL(ctx context.Context, method, escaped string, body any) (json.RawMessage, error) {
	var bodyReader io.Reader
	if body != nil {
		var data []byte
		switch b := body.(type) {
		case json.RawMessage:
			data = b
		case []byte:
			data = b
		default:
			var err error
			data, err = json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("marshaling request body: %w", err)
			}
		}
		bodyReader = bytes.NewReader(data)
	}

	u := c.baseURL + escaped
	if c.auth != nil {
		q := url.Values{}
		if err := c.auth.Authorize(ctx, q); err != nil {
			return nil, err
		}
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Keep credentials out of error messages.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.baseURL + escaped
		}
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	return json.RawMessage(respBody), nil
}
