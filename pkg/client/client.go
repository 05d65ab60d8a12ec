// Package client calls a roman-calc server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/numeral"
)

// ClientConfig represents the configuration for the API client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // Default: 30 seconds
}

// Client is a roman-calc API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(config.BaseURL, "/"),
	}
}

// APIError is an error response the server returned.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("roman-calc API error (status %d): %s - %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("roman-calc API error (status %d): %s", e.StatusCode, e.Code)
}

// Add asks the server for augend + addend.
func (c *Client) Add(ctx context.Context, augend, addend string) (*CalculationResponse, error) {
	return c.calculate(ctx, "add", augend, addend)
}

// Subtract asks the server for minuend - subtrahend.
func (c *Client) Subtract(ctx context.Context, minuend, subtrahend string) (*CalculationResponse, error) {
	return c.calculate(ctx, "subtract", minuend, subtrahend)
}

func (c *Client) calculate(ctx context.Context, op, left, right string) (*CalculationResponse, error) {
	body, err := json.Marshal(CalculationRequest{Left: left, Right: right})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var resp CalculationResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/"+op, bytes.NewReader(body), &resp); err != nil {
		return nil, wrapKind(op, err)
	}
	return &resp, nil
}

// Expand fetches the forms of a numeral.
func (c *Client) Expand(ctx context.Context, n string) (*ExpandResponse, error) {
	var resp ExpandResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/expand/"+url.PathEscape(n), nil, &resp); err != nil {
		return nil, wrapKind("expand", err)
	}
	return &resp, nil
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseError parses an error response from the server.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Code: "unreadable_response"}
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode), Description: strings.TrimSpace(string(body))}
	}

	return &APIError{StatusCode: resp.StatusCode, Code: errResp.Error, Description: errResp.ErrorDescription}
}

// wrapKind turns API errors naming a calculation error kind into an
// *numeral.OpError, so callers classify remote and local failures alike.
func wrapKind(op string, err error) error {
	apiErr, ok := err.(*APIError)
	if !ok {
		return err
	}

	switch kind := numeral.ErrorKind(apiErr.Code); kind {
	case numeral.KindInvalidSymbol, numeral.KindNumeralTooLarge, numeral.KindUnderflow:
		return &numeral.OpError{Op: op, Kind: kind, Err: apiErr}
	}
	return err
}
