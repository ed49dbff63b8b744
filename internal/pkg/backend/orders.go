package backend

import (
	"context"

	"github.com/smash-arena/pos-terminal/internal/domain/order"
)

// CreateOrder submits a cart. The idempotency key lets the backend drop a
// retried submission of the same draft.
func (c *Client) CreateOrder(ctx context.Context, req order.CreateOrderRequest, idempotencyKey string) (order.Order, error) {
	var body struct {
		Data order.Order `json:"data"`
	}
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}
	if err := c.postJSON(ctx, "/orders", req, headers, &body); err != nil {
		return order.Order{}, err
	}
	return body.Data, nil
}
