package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sp4c38/pizzatech-api/models"
)

// CheckLogin asks the backend whether the given credentials are (still)
// valid, without issuing any tokens.
func (c *Client) CheckLogin(ctx context.Context, username, password string) (bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(username, password).
		Post("/pizzaapp/login/onlycheck")
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return false, &APIError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var result struct {
		UserExists bool `json:"user_exists"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return false, fmt.Errorf("%w: %v", ErrIncompatibleResponse, err)
	}
	return result.UserExists, nil
}

// Login authenticates a delivery account and returns a refresh and access
// token pair.
func (c *Client) Login(ctx context.Context, username, password, deviceDescription string) (*models.TokenPair, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBasicAuth(username, password).
		SetBody(map[string]string{"device_description": deviceDescription}).
		Post("/auth/login/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var tokens models.TokenPair
	if err := json.Unmarshal(resp.Body(), &tokens); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleResponse, err)
	}
	return &tokens, nil
}

// RefreshToken trades a valid refresh token for a new token pair.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+refreshToken).
		Post("/auth/refresh/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var tokens models.TokenPair
	if err := json.Unmarshal(resp.Body(), &tokens); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleResponse, err)
	}
	return &tokens, nil
}
