// Package backend talks to the remote PizzaTech backend. The backend is not
// under this app's control and is consumed as a black-box JSON API.
package backend

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://www.space8.me:7392"

const requestTimeout = 15 * time.Second

type Client struct {
	http *resty.Client
}

// NewClient creates a backend client. An empty baseURL falls back to the
// default production backend.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json")
	return &Client{http: client}
}
