// Package rne provides a client for the INPI Registre National des
// Entreprises API: company records, annual financial statements (bilans)
// and legal documents (actes).
package rne

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options configures the base API client.
type Options struct {
	// BaseURL of the RNE API, without a trailing slash.
	BaseURL string
	// Username and Password are the INPI account credentials.
	Username string
	Password string
	// Timeout for each HTTP request. Defaults to 30 seconds.
	Timeout time.Duration
}

// Client is the base HTTP client shared by the domain clients. It owns the
// underlying connection pool and the bearer token obtained at login.
//
// A Client holds network resources; release them with Close:
//
//	client := rne.NewClient(opts)
//	defer client.Close()
type Client struct {
	http     *resty.Client
	username string
	password string
	token    string
}

// NewClient creates a base RNE API client. No network call is made until
// Authenticate or a fetch is invoked.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseURL)
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("Content-Type", "application/json")

	return &Client{
		http:     httpClient,
		username: opts.Username,
		password: opts.Password,
	}
}

// Token returns the bearer token obtained by Authenticate, or the empty
// string before login.
func (c *Client) Token() string {
	return c.token
}

// IsAuthenticated reports whether a bearer token is held.
func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

// Close releases the idle connections held by the underlying transport.
// The client must not be used afterwards.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
}

// statusError maps a non-2xx response to the error taxonomy. 401 and 403
// indicate a rejected or expired token.
func statusError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &AuthError{StatusCode: status, Message: string(resp.Body())}
	}
	return &APIError{
		StatusCode: status,
		Body:       string(resp.Body()),
		URL:        resp.Request.URL,
	}
}

// getJSON issues an authenticated GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		Get(path)
	if err != nil {
		return &APIError{URL: path, Err: err}
	}
	if resp.IsError() {
		return statusError(resp)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
			URL:        resp.Request.URL,
			Err:        fmt.Errorf("invalid JSON response: %w", err),
		}
	}
	return nil
}

// getBytes issues an authenticated GET and returns the raw body. Used for
// PDF downloads.
func (c *Client) getBytes(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		Get(path)
	if err != nil {
		return nil, &APIError{URL: path, Err: err}
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return resp.Body(), nil
}

// postJSON issues an authenticated POST with a JSON body and decodes the
// JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetBody(body).
		Post(path)
	if err != nil {
		return &APIError{URL: path, Err: err}
	}
	if resp.IsError() {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
			URL:        resp.Request.URL,
			Err:        fmt.Errorf("invalid JSON response: %w", err),
		}
	}
	return nil
}
