package apicheck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// transientStatuses are the only HTTP statuses worth retrying; anything
// else is a definitive answer from the server.
var transientStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Client is a small HTTP client for exercising the backend: JSON in/out,
// bearer auth once a token is set, and bounded retry with exponential
// backoff on transient failures.
type Client struct {
	baseURL     string
	http        *http.Client
	retries     int
	backoffBase time.Duration
	token       string
}

// NewClient builds a client for the given API base URL. retries is the
// number of additional attempts after the first.
func NewClient(baseURL string, timeout time.Duration, retries int) *Client {
	return &Client{
		baseURL:     baseURL,
		http:        &http.Client{Timeout: timeout},
		retries:     retries,
		backoffBase: 500 * time.Millisecond,
	}
}

// SetToken makes subsequent requests carry the bearer token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// backoffFor returns the sleep before retry attempt n (1-based): base,
// 2*base, 4*base, ...
func (c *Client) backoffFor(attempt int) time.Duration {
	return c.backoffBase << (attempt - 1)
}

// Do sends one JSON request and returns the final status and body after
// exhausting retries. Network errors and transient statuses are retried;
// everything else returns immediately.
func (c *Client) Do(method, path string, payload interface{}) (int, []byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(c.backoffFor(attempt))
		}

		req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return 0, nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			log.Debug().Err(err).Str("path", path).Int("attempt", attempt+1).Msg("request failed, will retry")
			continue
		}

		respBody, status, readErr := drain(resp)
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if transientStatuses[status] && attempt < c.retries {
			lastErr = fmt.Errorf("transient status %d", status)
			log.Debug().Int("status", status).Str("path", path).Int("attempt", attempt+1).Msg("transient status, will retry")
			continue
		}

		return status, respBody, nil
	}

	return 0, nil, fmt.Errorf("%s %s failed after %d attempts: %w", method, path, c.retries+1, lastErr)
}

func drain(resp *http.Response) ([]byte, int, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

func (c *Client) Get(path string) (int, []byte, error) {
	return c.Do(http.MethodGet, path, nil)
}

func (c *Client) Post(path string, payload interface{}) (int, []byte, error) {
	return c.Do(http.MethodPost, path, payload)
}

func (c *Client) Put(path string, payload interface{}) (int, []byte, error) {
	return c.Do(http.MethodPut, path, payload)
}

func (c *Client) Delete(path string) (int, []byte, error) {
	return c.Do(http.MethodDelete, path, nil)
}
