package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/metrics"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
	DefaultTimeout    = 30 * time.Second
)

// Client performs JSON requests against the script endpoint. Every call gets
// its own retry budget, nothing is shared between calls.
type Client struct {
	http      *http.Client
	baseDelay time.Duration
	newTimer  func() backoff.Timer
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

func WithBaseDelay(d time.Duration) Option {
	return func(cl *Client) {
		cl.baseDelay = d
	}
}

// WithTimer replaces the timer used to wait between attempts.
func WithTimer(newTimer func() backoff.Timer) Option {
	return func(cl *Client) {
		cl.newTimer = newTimer
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		baseDelay: DefaultBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET and decodes the JSON answer into out, retrying transport
// and HTTP errors up to retries times.
func (c *Client) Get(ctx context.Context, rawURL string, retries int, out interface{}) error {
	return c.do(ctx, http.MethodGet, rawURL, nil, retries, out)
}

// PostJSON sends body as JSON and decodes the answer into out.
func (c *Client) PostJSON(ctx context.Context, rawURL string, body interface{}, retries int, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, rawURL, payload, retries, out)
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte, retries int, out interface{}) error {
	if retries < 0 {
		retries = 0
	}

	operation := func() error {
		start := time.Now()
		err := c.once(ctx, method, rawURL, payload, out)
		metrics.RemoteRequestDuration.WithLabelValues(method, outcome(err)).Observe(time.Since(start).Seconds())
		if err != nil {
			logger.Error.Printf("API request %s %s failed: %v", method, redact(rawURL), err)
		}
		return err
	}

	notify := func(err error, next time.Duration) {
		metrics.RemoteRetriesTotal.WithLabelValues(method).Inc()
		logger.Info.Printf("Retrying %s %s in %s", method, redact(rawURL), next)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{base: c.baseDelay}, uint64(retries)),
		ctx,
	)

	var timer backoff.Timer
	if c.newTimer != nil {
		timer = c.newTimer()
	}
	return backoff.RetryNotifyWithTimer(operation, policy, notify, timer)
}

func (c *Client) once(ctx context.Context, method, rawURL string, payload []byte, out interface{}) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &HTTPError{Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if httpErr, ok := IsHTTPError(err); ok {
		return fmt.Sprintf("http_%d", httpErr.Status)
	}
	return "error"
}

// redact drops the query string so search values and keys stay out of logs.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	action := u.Query().Get("action")
	u.RawQuery = ""
	if action != "" {
		return u.String() + "?action=" + action
	}
	return u.String()
}
