package api

import (
	"context"
	"net/http"

	"github.com/autopunish/panelctl/internal/domain"
)

// Session asks the backend whether the current client is authenticated
func (c *Client) Session(ctx context.Context) (domain.SessionState, error) {
	var state domain.SessionState
	if err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, &state); err != nil {
		return domain.SessionState{}, err
	}
	return state, nil
}

// Login submits credentials. Transport failures come back as an error; a
// rejected login comes back as a LoginResult with Success=false and the
// server-supplied error text, so the login page can render it in place.
func (c *Client) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	var result domain.LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result)
	if err != nil {
		if apiErr, ok := err.(APIError); ok && apiErr.Status == http.StatusUnauthorized {
			// Credential rejections arrive as 401 with an error body.
			return domain.LoginResult{Success: false, Error: apiErr.Message}, nil
		}
		return domain.LoginResult{}, err
	}
	return result, nil
}

// Logout terminates the backend session
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}
