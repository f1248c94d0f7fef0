package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultEndpoint serves the full comment list as a JSON array.
	DefaultEndpoint  = "https://jsonplaceholder.typicode.com/comments"
	DefaultUserAgent = "commentdeck/1.0"

	// maxErrorBody caps how much of a non-200 body ends up in an error message.
	maxErrorBody = 512
)

// Options configures a Client.
type Options struct {
	Endpoint string
	// Timeout bounds a whole request. Zero leaves it to the transport.
	Timeout   time.Duration
	UserAgent string
	Logger    zerolog.Logger
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client is the comments API client.
type Client struct {
	http      *http.Client
	endpoint  string
	userAgent string
	log       zerolog.Logger
}

// NewClient creates a new comments API client.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Client{
		http:      hc,
		endpoint:  endpoint,
		userAgent: ua,
		log:       opts.Logger,
	}
}

// get fetches a URL and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, url string, dst any) error {
	reqID := uuid.NewString()
	logger := c.log.With().Str("request_id", reqID).Str("url", url).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &NetworkError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	logger.Debug().Msg("request started")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("request failed")
		return &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("response received")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &NetworkError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		if ctx.Err() != nil {
			return &NetworkError{URL: url, Err: ctx.Err()}
		}
		return &DeserializationError{URL: url, Err: err}
	}
	return nil
}
