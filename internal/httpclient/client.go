// Package httpclient wraps the stdlib HTTP client with the defaults the service uses for
// outgoing requests.
package httpclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout is the default timeout of a single request.
const DefaultTimeout = 10 * time.Second

var (
	// UserAgent is sent with every request unless overridden.
	UserAgent = "temperature-chart/dev (+https://github.com/katiamach/temperature-chart)"

	ErrNonPointerTarget = errors.New("target must be a non-nil pointer")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Client is a type wrapper for the stdlib http.Client.
type Client struct {
	*http.Client
	userAgent string
	logger    logrus.FieldLogger
}

// New returns a new HTTP client with the given request timeout.
func New(logger logrus.FieldLogger, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}

	return &Client{
		Client:    &http.Client{Timeout: timeout, Transport: transport},
		userAgent: UserAgent,
		logger:    logger,
	}
}

// WithUserAgent sets the User-Agent header sent by the client.
func (c *Client) WithUserAgent(ua string) *Client {
	if ua != "" {
		c.userAgent = ua
	}
	return c
}

// Open performs a GET request and returns the response whatever its status. The caller
// must close the body.
func (c *Client) Open(ctx context.Context, endpoint string, query url.Values) (*http.Response, error) {
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	request.Header.Set("User-Agent", c.userAgent)
	request.Header.Set("Accept", "application/json")

	response, err := c.Do(request)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to perform HTTP request: %w", err)
	}

	return response, nil
}

// GetJSON performs a GET request and JSON-decodes a 2xx response into target.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, target any) error {
	if target == nil {
		return ErrNonPointerTarget
	}

	response, err := c.Open(ctx, endpoint, query)
	if err != nil {
		return err
	}
	defer c.Close(response.Body)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, response.Status)
	}

	if err = json.NewDecoder(response.Body).Decode(target); err != nil {
		var invalid *json.InvalidUnmarshalError
		if errors.As(err, &invalid) {
			return ErrNonPointerTarget
		}
		return fmt.Errorf("failed to decode JSON: %w", err)
	}

	return nil
}

// Close closes a response body and logs a failure to do so.
func (c *Client) Close(body io.Closer) {
	if err := body.Close(); err != nil {
		c.logger.WithError(err).Error("failed to close HTTP response body")
	}
}
