package orders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Order lifecycle tokens pushed by the payment service. The order service
// owns validation of the token set.
const (
	StatusPaid          = "PAID"
	StatusPaymentFailed = "PAYMENT_FAILED"
)

// StatusSink pushes an order lifecycle status to the owning order service.
type StatusSink interface {
	UpdateOrderStatus(ctx context.Context, orderID uint, status string) error
}

// Client talks to the order service over HTTP:
// PUT {base}/api/orders/{orderId}/status?status=TOKEN
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	endpoint := fmt.Sprintf("%s/api/orders/%d/status?status=%s", c.baseURL, orderID, url.QueryEscape(status))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("order service unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("order service rejected status update: %d %s", resp.StatusCode, string(body))
	}
	return nil
}
