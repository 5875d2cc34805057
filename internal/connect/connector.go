package connect

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrConnectionRefused is returned when a platform rejects the handshake.
var ErrConnectionRefused = errors.New("platform refused the connection")

// SimulatedConnector resolves after a random delay with a fixed success
// probability. It stands in for real platform integrations.
type SimulatedConnector struct {
	successRate float64
	minDelay    time.Duration
	maxDelay    time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedConnector creates a connector that succeeds with probability
// successRate after a delay in [minDelay, maxDelay). A nil src seeds from the clock.
func NewSimulatedConnector(successRate float64, minDelay, maxDelay time.Duration, src rand.Source) *SimulatedConnector {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1)
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &SimulatedConnector{
		successRate: successRate,
		minDelay:    minDelay,
		maxDelay:    maxDelay,
		rng:         rand.New(src),
	}
}

// Connect waits out the simulated latency and reports the drawn outcome.
func (c *SimulatedConnector) Connect(ctx context.Context, platformID string) error {
	c.mu.Lock()
	delay := c.minDelay
	if span := c.maxDelay - c.minDelay; span > 0 {
		delay += time.Duration(c.rng.Int64N(int64(span)))
	}
	ok := c.rng.Float64() < c.successRate
	c.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if !ok {
		return fmt.Errorf("%w: %s", ErrConnectionRefused, platformID)
	}
	return nil
}

// HTTPConnector asks an account-linking gateway to connect a platform.
type HTTPConnector struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPConnector creates a connector posting to
// {baseURL}/platforms/{id}/connect, at most requestsPerSecond requests per second.
func NewHTTPConnector(baseURL, apiKey string, httpClient *http.Client, requestsPerSecond int) *HTTPConnector {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	return &HTTPConnector{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// Connect performs the handshake request. Any 2xx response counts as connected.
func (c *HTTPConnector) Connect(ctx context.Context, platformID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL + "/platforms/" + url.PathEscape(platformID) + "/connect"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to build connect request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connect request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s responded %d", ErrConnectionRefused, platformID, resp.StatusCode)
	}
	return nil
}
