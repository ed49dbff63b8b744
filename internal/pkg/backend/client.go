package backend

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

	"github.com/smash-arena/pos-terminal/internal/config"
)

// ErrServerRejected matches every failure reported by, or on the way to, the
// booking backend.
var ErrServerRejected = errors.New("server rejected the request")

// APIError is a non-2xx response or a transport failure. StatusCode is 0 for
// transport failures.
type APIError struct {
	StatusCode int
	Message    string
	Details    map[string]string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("backend unreachable: %s", e.Message)
	}
	return fmt.Sprintf("backend error [%d]: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrServerRejected
}

func (e *APIError) Unwrap() error {
	return e.Err
}

type tokenKey struct{}

// WithToken attaches the caller's session token; it is forwarded as the
// bearer token on backend requests.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks to the booking backend REST API.
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

// NewClient creates a backend client from config.
func NewClient(cfg config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	token := tokenFromContext(ctx)
	if token == "" {
		token = c.apiToken
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, headers map[string]string, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	return nil
}

// errorBody covers the backend's {message, errors{field: [msg]}} shape.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func decodeError(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = http.StatusText(status)
	}

	if len(body.Errors) > 0 {
		apiErr.Details = make(map[string]string, len(body.Errors))
		for field, msgs := range body.Errors {
			if len(msgs) > 0 {
				apiErr.Details[field] = msgs[0]
			}
		}
	}
	return apiErr
}

// decodeList accepts either a bare JSON array or an object wrapping it in
// "data".
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	var list []T
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var wrapped struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Data == nil {
		return []T{}, nil
	}
	return wrapped.Data, nil
}
