// Package client talks to the gasnet server's HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gasnet/internal/domain"
	"gasnet/internal/topology"
)

// DefaultTimeout bounds a single API call
const DefaultTimeout = 60 * time.Second

// APIError is a non-2xx answer from the server
type APIError struct {
	Code    int
	Message string
	Details string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	if e.Details != "" {
		return fmt.Sprintf("server returned %d: %s: %s", e.Code, msg, e.Details)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, msg)
}

// Unwrap maps status codes back to the domain sentinels
func (e *APIError) Unwrap() error {
	switch e.Code {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest:
		return domain.ErrInvalid
	}
	return nil
}

// Client is a gasnet API client
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL. A nil hc uses a traced
// client with DefaultTimeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// ListNetworks returns the saved network summaries
func (c *Client) ListNetworks(ctx context.Context) ([]domain.NetworkSummary, error) {
	var list []domain.NetworkSummary
	if err := c.do(ctx, http.MethodGet, "/api/networks", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetNetwork returns one saved network
func (c *Client) GetNetwork(ctx context.Context, id int64) (*domain.SavedNetwork, error) {
	var saved domain.SavedNetwork
	if err := c.do(ctx, http.MethodGet, networkPath(id), nil, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// SaveNetwork stores a new network and returns its id
func (c *Client) SaveNetwork(ctx context.Context, req *domain.SaveRequest) (int64, error) {
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/networks", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// DeleteNetwork removes a saved network
func (c *Client) DeleteNetwork(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, networkPath(id), nil, nil)
}

// Simulate runs a network through the server's solver proxy
func (c *Client) Simulate(ctx context.Context, network domain.Network, fluid string) (*domain.SimulationResult, error) {
	var res domain.SimulationResult
	if err := c.do(ctx, http.MethodPost, withQuery("/api/simulate", "fluid", fluid), network, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SimulateStored runs a saved network
func (c *Client) SimulateStored(ctx context.Context, id int64, fluid string) (*domain.SimulationResult, error) {
	path := withQuery("/api/simulate/"+strconv.FormatInt(id, 10), "fluid", fluid)
	var res domain.SimulationResult
	if err := c.do(ctx, http.MethodPost, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Analyze returns the topology report for a network
func (c *Client) Analyze(ctx context.Context, network domain.Network) (*topology.Report, error) {
	var report topology.Report
	if err := c.do(ctx, http.MethodPost, "/api/analyze", network, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Import uploads a JSON or YAML document and returns the new id. An empty
// name keeps the document's own name.
func (c *Client) Import(ctx context.Context, format, name string, data []byte) (int64, error) {
	q := url.Values{}
	if format != "" {
		q.Set("format", format)
	}
	if name != "" {
		q.Set("name", name)
	}
	path := "/api/import"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.send(ctx, http.MethodPost, path, bytes.NewReader(data), "application/octet-stream")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var out struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode import response: %w", err)
	}
	return out.ID, nil
}

// Export writes a saved network in the given format to w
func (c *Client) Export(ctx context.Context, id int64, format string, w io.Writer) error {
	path := withQuery(networkPath(id)+"/export", "format", format)
	resp, err := c.send(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read export: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := c.send(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send issues a request and turns non-2xx answers into *APIError
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Code: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var env struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(data, &env); err == nil && env.Error != "" {
		apiErr.Message = env.Error
		apiErr.Details = env.Details
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

// IsUnavailable reports whether err means the solver could not be reached
func IsUnavailable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusBadGateway || apiErr.Code == http.StatusServiceUnavailable
}

func networkPath(id int64) string {
	return "/api/networks/" + strconv.FormatInt(id, 10)
}

func withQuery(path, key, value string) string {
	if value == "" {
		return path
	}
	return path + "?" + key + "=" + url.QueryEscape(value)
}
