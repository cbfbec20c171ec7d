package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/rickgao/autosell/internal/version"
)

// APIError represents an error response from the Bittrex API.
type APIError struct {
	StatusCode int
	Code       string // v3 error code or v1.1 message, if any
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("bittrex api error %d: %s (%s)", e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("bittrex api error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// TransportError is an HTTP-level failure: the request could not be sent,
// the server answered with a non-success status, or the body was malformed.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status if the server answered, otherwise 0.
func (e *TransportError) StatusCode() int {
	var apiErr *APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// AuthError means the exchange rejected the request's credentials or signature.
type AuthError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("authentication rejected (%d): %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("authentication rejected (%d): %s", e.StatusCode, e.Message)
}

// v3 error codes that indicate a credential problem regardless of status.
var authCodes = map[string]bool{
	"APIKEY_INVALID":    true,
	"INVALID_SIGNATURE": true,
	"INVALID_TIMESTAMP": true,
	"UNAUTHORIZED":      true,
}

// v3ErrorBody is the error payload returned by v3 endpoints.
type v3ErrorBody struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// v1Envelope wraps every v1.1 response.
type v1Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// doRequest performs a single HTTP request. When signed is set, the request is
// signed with a fresh timestamp over exactly the body bytes that are sent.
func (c *Client) doRequest(ctx context.Context, method, fullURL string, body []byte, signed bool) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if signed {
		if c.creds == nil {
			return nil, &AuthError{Message: "no credentials configured"}
		}
		for k, v := range c.creds.SignRequest(c.now().UnixMilli(), method, fullURL, body) {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	var eb v3ErrorBody
	_ = json.Unmarshal(respBody, &eb)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden || authCodes[eb.Code] {
		return nil, &AuthError{
			StatusCode: resp.StatusCode,
			Code:       eb.Code,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	return nil, &TransportError{
		Method: method,
		URL:    fullURL,
		Err: &APIError{
			StatusCode: resp.StatusCode,
			Code:       eb.Code,
			Message:    http.StatusText(resp.StatusCode),
			Body:       respBody,
		},
	}
}

// doWithRetry performs an idempotent request with exponential backoff retry.
func (c *Client) doWithRetry(ctx context.Context, method, fullURL string, signed bool) ([]byte, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Add jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int63n(int64(backoff)+1))
			c.logger.Debug("retrying request",
				"attempt", attempt,
				"backoff", jitter,
				"url", fullURL,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		body, err := c.doRequest(ctx, method, fullURL, nil, signed)
		if err == nil {
			return body, nil
		}

		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsRetryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// getPublic performs an unauthenticated v1.1 GET and unwraps the envelope.
func (c *Client) getPublic(ctx context.Context, path string, query url.Values, result any) error {
	fullURL := c.publicURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	body, err := c.doWithRetry(ctx, http.MethodGet, fullURL, false)
	if err != nil {
		return err
	}

	var env v1Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &TransportError{Method: http.MethodGet, URL: fullURL, Err: fmt.Errorf("unmarshal envelope: %w", err)}
	}
	if !env.Success {
		return &TransportError{
			Method: http.MethodGet,
			URL:    fullURL,
			Err: &APIError{
				StatusCode: http.StatusOK,
				Code:       env.Message,
				Message:    "request unsuccessful",
				Body:       body,
			},
		}
	}

	if err := json.Unmarshal(env.Result, result); err != nil {
		return &TransportError{Method: http.MethodGet, URL: fullURL, Err: fmt.Errorf("unmarshal result: %w", err)}
	}

	return nil
}

// getPrivate performs a signed v3 GET with retries.
func (c *Client) getPrivate(ctx context.Context, path string, result any) error {
	fullURL := c.privateURL + path

	body, err := c.doWithRetry(ctx, http.MethodGet, fullURL, true)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &TransportError{Method: http.MethodGet, URL: fullURL, Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	return nil
}

// postPrivate performs a signed v3 POST. It is never retried: a lost response
// does not mean the exchange did not act on the request.
func (c *Client) postPrivate(ctx context.Context, path string, payload, result any) error {
	fullURL := c.privateURL + path

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, fullURL, reqBody, true)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &TransportError{Method: http.MethodPost, URL: fullURL, Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	return nil
}
