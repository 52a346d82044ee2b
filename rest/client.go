// Package rest is a minimal HTTP session for the Discord REST API,
// covering the audit log endpoint family. It does no retrying or rate
// limit pacing; errors surface to the caller as *APIError.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	mrand "math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/shorebird/cordial"
	"github.com/shorebird/cordial/auditlog"
)

const defaultBaseURL = "https://discord.com/api/v8"

// APIError is a non-2xx response from the API, carrying the JSON error
// code and message Discord returns.
type APIError struct {
	Status    int
	Code      int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rest: %d (code %d): %s", e.Status, e.Code, e.Message)
}

// Client is a bot-token authenticated session. Construct with NewClient.
type Client struct {
	// BaseURL may be overridden before the first request, e.g. to point at
	// a proxy or a test server.
	BaseURL string

	http  *http.Client
	token string
	log   zerolog.Logger
}

// NewClient builds a session around the given bot token.
func NewClient(token string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: timeout,
		},
		token: token,
		log:   log,
	}
}

// GuildAuditLog performs one Get Guild Audit Log request and returns the
// raw response body. It satisfies auditlog.FetchFunc.
func (c *Client) GuildAuditLog(ctx context.Context, q auditlog.FetchQuery) ([]byte, error) {
	params := url.Values{}
	if q.UserID != 0 {
		params.Set("user_id", q.UserID.String())
	}
	if q.ActionType != 0 {
		params.Set("action_type", strconv.Itoa(int(q.ActionType)))
	}
	if q.Before != 0 {
		params.Set("before", q.Before.String())
	}
	if q.Limit != 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	endpoint := fmt.Sprintf("%s/guilds/%s/audit-logs", c.BaseURL, q.GuildID)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	return c.get(ctx, endpoint)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	reqID := newRequestID()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("rest: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("User-Agent", "cordial/"+cordial.Version)
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rest: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rest: failed to read response: %w", err)
	}

	c.log.Debug().
		Str("request_id", reqID).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, RequestID: reqID}
		var p struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &p) == nil {
			apiErr.Code = p.Code
			apiErr.Message = p.Message
		}
		return nil, apiErr
	}
	return body, nil
}

func newRequestID() string {
	t := time.Now()
	entropy := ulid.Monotonic(mrand.New(mrand.NewSource(t.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
