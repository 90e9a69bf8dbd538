// Package client is a typed SDK over the EduVillage REST API. It carries the
// state synchronization used by the student views: progress polling with
// stale-response discard, confirm-then-update content completion, and an
// in-memory certificate store with duplicate-generate suppression.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is the shared transport for all API calls. It holds no user state;
// the authenticated identity travels in an explicit Session.
type Client struct {
	http *resty.Client
}

// New creates a client against the given base URL (scheme + host, no path).
func New(baseURL string) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &Client{http: r}
}

// envelope is the server's uniform response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doJSON performs a request and unmarshals the envelope's data field into out.
// All failures come back as *APIError; nothing is retried here.
func (c *Client) doJSON(ctx context.Context, sess *Session, method, path string, body, out interface{}) error {
	if sess == nil || sess.Token == "" {
		return &APIError{Kind: ErrAuth, Message: "no session credential"}
	}

	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(sess.Token)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &APIError{Kind: ErrTransport, Message: "request failed", Err: err}
	}

	var env envelope
	if unmarshalErr := json.Unmarshal(resp.Body(), &env); unmarshalErr != nil && resp.StatusCode() < 300 {
		return &APIError{Kind: ErrEmptyPayload, Status: resp.StatusCode(), Message: "unreadable response body", Err: unmarshalErr}
	}

	if apiErr := classify(resp.StatusCode(), env.Message); apiErr != nil {
		return apiErr
	}

	if out != nil {
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return &APIError{Kind: ErrEmptyPayload, Status: resp.StatusCode(), Message: "empty response payload"}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &APIError{Kind: ErrEmptyPayload, Status: resp.StatusCode(), Message: "malformed response payload", Err: err}
		}
	}
	return nil
}

// doRaw performs a request and returns the raw body bytes (binary downloads).
func (c *Client) doRaw(ctx context.Context, sess *Session, path string) ([]byte, error) {
	if sess == nil || sess.Token == "" {
		return nil, &APIError{Kind: ErrAuth, Message: "no session credential"}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(sess.Token).
		Get(path)
	if err != nil {
		return nil, &APIError{Kind: ErrTransport, Message: "request failed", Err: err}
	}

	if resp.StatusCode() >= 300 {
		var env envelope
		_ = json.Unmarshal(resp.Body(), &env)
		if apiErr := classify(resp.StatusCode(), env.Message); apiErr != nil {
			return nil, apiErr
		}
	}
	return resp.Body(), nil
}

// classify maps an HTTP status to the error taxonomy. nil means success.
func classify(status int, message string) *APIError {
	switch {
	case status < 300:
		return nil
	case status == http.StatusUnauthorized:
		if message == "" {
			message = "authentication required"
		}
		return &APIError{Kind: ErrAuth, Status: status, Message: message}
	case status == http.StatusConflict:
		return &APIError{Kind: ErrConflict, Status: status, Message: message}
	case status >= 400 && status < 500:
		if message == "" {
			message = fmt.Sprintf("request rejected (%d)", status)
		}
		return &APIError{Kind: ErrValidation, Status: status, Message: message}
	default:
		if message == "" {
			message = fmt.Sprintf("server error (%d)", status)
		}
		return &APIError{Kind: ErrTransport, Status: status, Message: message}
	}
}
