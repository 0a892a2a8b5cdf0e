package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sp4c38/pizzatech-api/models"
)

// FetchCatalog downloads and decodes the full product catalog.
func (c *Client) FetchCatalog(ctx context.Context) (*models.Catalog, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/get/catalog/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var catalog models.Catalog
	if err := json.Unmarshal(resp.Body(), &catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleResponse, err)
	}
	return &catalog, nil
}
