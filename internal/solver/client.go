package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"gasnet/internal/domain"
)

// maxErrorBody bounds how much of a failed response is kept
const maxErrorBody = 4096

// StatusError is returned when the solver answers with a non-2xx status
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("solver returned status %d", e.Code)
	}
	return fmt.Sprintf("solver returned status %d: %s", e.Code, e.Body)
}

// Options configures a Client
type Options struct {
	URL           string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	Breaker       BreakerOpts
	// HTTPClient overrides the traced default client
	HTTPClient *http.Client
}

// Client talks to the remote solver service
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	breaker *Breaker
}

// New creates a solver client. A zero RatePerSecond disables throttling.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL: strings.TrimRight(opts.URL, "/"),
		http:    hc,
		limiter: rate.NewLimiter(limit, burst),
		breaker: NewBreaker(opts.Breaker),
	}
}

// BreakerState reports the circuit breaker state
func (c *Client) BreakerState() State {
	return c.breaker.State()
}

// Simulate sends a network to the solver and decodes its result. Transport
// errors and 5xx answers count against the breaker; 4xx answers are
// returned as *StatusError without tripping it.
func (c *Client) Simulate(ctx context.Context, network domain.Network, fluid string) (*domain.SimulationResult, error) {
	body, err := json.Marshal(network)
	if err != nil {
		return nil, fmt.Errorf("encode network: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for solver slot: %w", err)
	}

	var (
		result    *domain.SimulationResult
		clientErr error
	)
	err = c.breaker.Call(ctx, func(ctx context.Context) error {
		res, err := c.post(ctx, body, fluid)
		var se *StatusError
		if errors.As(err, &se) && se.Code < 500 {
			clientErr = err
			return nil
		}
		result = res
		return err
	})
	if err != nil {
		return nil, err
	}
	if clientErr != nil {
		return nil, clientErr
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, body []byte, fluid string) (*domain.SimulationResult, error) {
	endpoint := c.baseURL + "/simulate"
	if fluid != "" {
		endpoint += "?fluid=" + url.QueryEscape(fluid)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build solver request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call solver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var result domain.SimulationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode solver result: %w", err)
	}
	if result.Nodes == nil {
		result.Nodes = []domain.NodeResult{}
	}
	if result.Edges == nil {
		result.Edges = []domain.EdgeResult{}
	}
	return &result, nil
}
