package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vitalsalud/citas-core/internal/metrics"
	"github.com/vitalsalud/citas-core/internal/models"
	"github.com/vitalsalud/citas-core/internal/storage"
)

// GenericFailureMessage is surfaced when the backend gives no message
const GenericFailureMessage = "Error de conexión"

// publicRoutes are served without authentication; no token is attached
// and a 401 on them never clears the session.
var publicRoutes = []string{"api/login"}

// Error is a non-2xx API response carrying the server's verbatim message
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// ServerMessage extracts the backend's message from err, falling back to
// the generic localized message. Screens surface this string directly.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericFailureMessage
}

// Client is the single HTTP gateway to the backend. It attaches the
// stored bearer token and guard header to every non-public request, and
// clears the stored token once when a non-public request comes back 401.
// It never replays the failed request; the session router notices the
// cleared token on its next refresh and falls back to the auth tree.
type Client struct {
	http    *http.Client
	baseURL string
	store   storage.Store
}

// NewClient creates a gateway against baseURL using the given session store
func NewClient(baseURL string, store storage.Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
	}
}

// IsPublicRoute reports whether the path is served without authentication
func IsPublicRoute(path string) bool {
	for _, route := range publicRoutes {
		if strings.Contains(path, route) {
			return true
		}
	}
	return false
}

// Get issues a GET and decodes the JSON body into out
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE and decodes the response into out
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	public := IsPublicRoute(path)
	if !public {
		c.addAuth(ctx, req)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	metrics.RequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized && !public {
			c.clearToken(ctx)
		}
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// addAuth reads the session and attaches the bearer token and guard
// header. A missing token simply leaves the request anonymous; the
// backend answers 401 and the normal clear path applies.
func (c *Client) addAuth(ctx context.Context, req *http.Request) {
	token, err := c.store.Get(ctx, storage.KeyUserToken)
	if err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	raw, err := c.store.Get(ctx, storage.KeyUserInfo)
	if err != nil || raw == "" {
		return
	}
	var info models.UserInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return
	}
	if info.Guard != "" {
		req.Header.Set("X-Auth-Guard", info.Guard)
	}
}

// clearToken removes the stored token. It runs at most once per failing
// request since do never retries; the user info blob is left in place so
// a later login for the same account keeps its profile cache.
func (c *Client) clearToken(ctx context.Context) {
	if err := c.store.Delete(ctx, storage.KeyUserToken); err != nil {
		log.Warn().Err(err).Msg("Failed to clear token after 401")
		return
	}
	metrics.TokenClears.Inc()
	log.Info().Msg("Token expired or unauthorized, cleared stored session token")
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(resp.Body)
	if err == nil && len(data) > 0 {
		var msg models.MessageResponse
		if jsonErr := json.Unmarshal(data, &msg); jsonErr == nil {
			apiErr.Message = msg.Message
		}
	}
	return apiErr
}
