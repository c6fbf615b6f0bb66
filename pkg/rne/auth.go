package rne

import (
	"context"
	"encoding/json"
	"net/http"
)

// loginRequest is the body of the sso/login call.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the body returned by a successful login.
type loginResponse struct {
	Token string `json:"token"`
}

// Authenticate exchanges the configured credentials for a bearer token.
// One token is obtained per client lifetime; there is no refresh or expiry
// tracking, server-side expiry simply surfaces as an AuthError on a later
// call.
func (c *Client) Authenticate(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Username: c.username, Password: c.password}).
		Post("/sso/login")
	if err != nil {
		return &AuthError{Message: err.Error()}
	}

	if resp.IsError() {
		status := resp.StatusCode()
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return &AuthError{StatusCode: status, Message: "credentials rejected"}
		}
		return &AuthError{StatusCode: status, Message: string(resp.Body())}
	}

	var body loginResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return &AuthError{Message: "invalid authentication response format: " + err.Error()}
	}
	if body.Token == "" {
		return &AuthError{Message: "no token found in the authentication response"}
	}

	c.token = body.Token
	return nil
}
