package paymentclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"swapmarket/internal/config"
	"swapmarket/internal/gateway"
	"swapmarket/internal/marketerrors"
	"swapmarket/utils"
)

// Client is an HTTP implementation of gateway.Payment against the platform's
// escrow provider. Calls are rate limited and bounded by the configured
// timeout; any transport or non-2xx outcome maps to ErrDependencyFailure so
// the engine keeps the entity in its pre-call phase.
type Client struct {
	client  *resty.Client
	limiter *rate.Limiter
}

// ensure Client implements the interface
var _ gateway.Payment = (*Client)(nil)

// NewClient creates a new escrow client from config.
func NewClient(cfg *config.Payment) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", "Bearer "+cfg.APIKey)

	return &Client{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
	}
}

type holdResponse struct {
	HoldID string `json:"hold_id"`
}

// HoldFunds places an escrow hold on the payer for the given amount.
func (c *Client) HoldFunds(ctx context.Context, payerID string, amount decimal.Decimal) (string, error) {
	req := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"payer_id": payerID, "amount": amount.StringFixed(2)}).
		SetResult(&holdResponse{})

	resp, err := c.do(ctx, "hold funds", http.MethodPost, "/holds", req)
	if err != nil {
		return "", err
	}
	return resp.Result().(*holdResponse).HoldID, nil
}

// CaptureFunds captures a previously placed hold.
func (c *Client) CaptureFunds(ctx context.Context, holdID string) error {
	req := c.client.R().SetContext(ctx)
	_, err := c.do(ctx, "capture funds", http.MethodPost, "/holds/"+holdID+"/capture", req)
	return err
}

// ReleaseFunds pays a captured hold out to the recipient.
func (c *Client) ReleaseFunds(ctx context.Context, holdID, recipientID string) error {
	req := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"recipient_id": recipientID})
	_, err := c.do(ctx, "release funds", http.MethodPost, "/holds/"+holdID+"/release", req)
	return err
}

// RefundFunds returns a held amount to the payer.
func (c *Client) RefundFunds(ctx context.Context, holdID string) error {
	req := c.client.R().SetContext(ctx)
	_, err := c.do(ctx, "refund funds", http.MethodPost, "/holds/"+holdID+"/refund", req)
	return err
}

// do executes a request behind the rate limiter and normalizes failures.
func (c *Client) do(ctx context.Context, op, method, url string, req *resty.Request) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limiter wait: %w", op, marketerrors.ErrDependencyFailure)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		utils.Warn("payment gateway call failed", map[string]any{"op": op, "error": err.Error()})
		return nil, fmt.Errorf("%s: %v: %w", op, err, marketerrors.ErrDependencyFailure)
	}
	if resp.IsError() {
		utils.Warn("payment gateway returned error status", map[string]any{"op": op, "status": resp.StatusCode()})
		return nil, fmt.Errorf("%s: gateway status %d: %w", op, resp.StatusCode(), marketerrors.ErrDependencyFailure)
	}
	return resp, nil
}
