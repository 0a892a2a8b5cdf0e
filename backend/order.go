package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sp4c38/pizzatech-api/models"
)

// SubmitOrder hands a new order to the backend. Any 2xx status counts as
// success; when the backend answers with a body, an explicit
// request_successful:false overrides the status. The idempotency key is sent
// so a retried submission after a lost response can be deduplicated
// server-side, should the backend support it.
func (c *Client) SubmitOrder(ctx context.Context, order models.OrderRequest, idempotencyKey string) (*models.SubmitOrderResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Idempotency-Key", idempotencyKey).
		SetBody(order).
		Post("/order/make/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &APIError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	result := &models.SubmitOrderResponse{}
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), result); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIncompatibleResponse, err)
		}
		if result.RequestSuccessful != nil && !*result.RequestSuccessful {
			return nil, ErrOrderRejected
		}
	}
	return result, nil
}

// OrderProgress asks the backend for the fulfillment percentage of an order.
func (c *Client) OrderProgress(ctx context.Context, orderID int64) (int, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]int64{"order_id": orderID}).
		Post("/order/get/progress/")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return 0, &APIError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var progress models.OrderProgressResponse
	if err := json.Unmarshal(resp.Body(), &progress); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIncompatibleResponse, err)
	}
	return progress.OrderProgress, nil
}

// GetAllOrders downloads the backend's list of open orders for the delivery
// and restaurant side apps, authorized with a backend access token.
func (c *Client) GetAllOrders(ctx context.Context, accessToken string) (*models.AllOrdersResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+accessToken).
		Post("/order/get_all/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &APIError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var orders models.AllOrdersResponse
	if err := json.Unmarshal(resp.Body(), &orders); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleResponse, err)
	}
	return &orders, nil
}

// UpdateOrderProgress pushes a new fulfillment percentage. Used by the
// delivery and restaurant side apps, authorized with a backend access token.
func (c *Client) UpdateOrderProgress(ctx context.Context, orderID int64, newProgress int, accessToken string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+accessToken).
		SetBody(map[string]int64{"order_id": orderID, "new_progress": int64(newProgress)}).
		Post("/order/update/progress/")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &APIError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}
	return nil
}

// DeleteOrder removes a completed order on the backend, authenticated with
// the stored delivery account credentials.
func (c *Client) DeleteOrder(ctx context.Context, orderID int64, username, password string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBasicAuth(username, password).
		SetBody(map[string]int64{"pizza_order_id": orderID}).
		Post("/pizzaapp/delete_order")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &APIError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}
	return nil
}
