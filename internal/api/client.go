package api

import (
	"fmt"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	"github.com/diogo/advicedice/internal/models"
)

// HTTPDoer is the part of tls_client.HttpClient the advice client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// AdviceClientInterface is implemented by AdviceClient and MockAdviceClient
type AdviceClientInterface interface {
	FetchAdvice() (*models.AdviceSlip, error)
	Endpoint() string
	Close()
	IsClosed() bool
}

// AdviceClient fetches advice slips from the Advice Slip API
type AdviceClient struct {
	httpClient HTTPDoer
	endpoint   string
	timeout    time.Duration
	logger     *zap.Logger
	mu         sync.RWMutex
	closed     bool
}

// Ensure AdviceClient implements AdviceClientInterface
var _ AdviceClientInterface = (*AdviceClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*AdviceClient)

// WithHTTPClient injects the HTTP client used for requests
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *AdviceClient) {
		c.httpClient = doer
	}
}

// WithEndpoint overrides the advice endpoint URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *AdviceClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTimeout sets the request timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *AdviceClient) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *AdviceClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new AdviceClient
func NewClient(opts ...ClientOption) (*AdviceClient, error) {
	client := &AdviceClient{
		endpoint: models.EndpointAdvice,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		httpClient, err := newTLSClient(client.timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// newTLSClient creates a TLS client with a Chrome profile
func newTLSClient(timeout time.Duration) (tls_client.HttpClient, error) {
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(timeout / time.Second)),
		tls_client.WithClientProfile(profiles.Chrome_120),
	}

	return tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
}

// Endpoint returns the advice endpoint URL
func (c *AdviceClient) Endpoint() string {
	return c.endpoint
}

// Close marks the client closed. Requests already in flight finish normally.
func (c *AdviceClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *AdviceClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
