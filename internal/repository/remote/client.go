package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-jobboard-gateway/config"
	"go-jobboard-gateway/pkg/apperror"
)

// Client is the shared HTTP client for the platform API. All gateway traffic
// to the platform goes through do so headers, timeouts and error mapping
// stay in one place.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	timeout := cfg.PlatformAPITimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.PlatformAPIURL,
		apiKey:  cfg.PlatformAPIKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// envelope is the platform API's response wrapper. Data is decoded lazily
// because its shape depends on the endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do executes one platform API call. body is JSON-encoded when non-nil; the
// response data field is decoded into out when out is non-nil. token is the
// caller's bearer token, empty for public endpoints.
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return apperror.Internal(err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperror.Internal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return apperror.Upstream("Platform API unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Upstream("Failed to read platform API response", err)
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerate non-enveloped payloads from older endpoints.
		if err := json.Unmarshal(raw, &env); err != nil {
			env.Data = raw
		}
	}

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, upstreamMessage(&env, raw))
	}

	if out != nil {
		data := env.Data
		if len(data) == 0 {
			data = raw
		}
		if len(data) == 0 || string(data) == "null" {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return apperror.Upstream("Failed to parse platform API response", err)
		}
	}
	return nil
}

func upstreamMessage(env *envelope, raw []byte) string {
	if env.Message != "" {
		return env.Message
	}
	if env.Error != "" {
		return env.Error
	}
	if len(raw) > 0 && len(raw) < 200 {
		return string(raw)
	}
	return "Platform API request failed"
}

// statusError maps a platform API failure onto the gateway's error codes.
// Upstream server errors are reported as bad gateway so clients can tell a
// platform outage from a gateway bug.
func statusError(status int, msg string) error {
	switch {
	case status == http.StatusUnauthorized:
		return apperror.Unauthorized(msg)
	case status == http.StatusForbidden:
		return apperror.Forbidden(msg)
	case status == http.StatusNotFound:
		return apperror.NotFound(msg)
	case status == http.StatusConflict:
		return apperror.Conflict(msg)
	case status == http.StatusTooManyRequests:
		return apperror.TooManyRequests(msg)
	case status >= 500:
		return apperror.Upstream(msg, fmt.Errorf("platform API returned %d", status))
	default:
		return apperror.BadRequest(msg)
	}
}
