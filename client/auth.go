package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/corkboard-dev/corkboard/internal/api"
)

// Register creates an account. The username must be on the server's
// allow-list or the call fails with a 400.
func (c *Client) Register(ctx context.Context, email, password, username string) error {
	body, err := json.Marshal(api.RegisterRequest{Email: email, Password: password, Username: username})
	if err != nil {
		return fmt.Errorf("failed to marshal register data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	return nil
}

// Login authenticates and stores the session token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("failed to marshal login data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	var loginResp api.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	c.SetToken(loginResp.AccessToken)
	return nil
}

// Logout drops the session on both sides.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/logout", "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	c.accessToken = ""
	return nil
}
