package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/siseg/payment-service/internal/config"
	"github.com/siseg/payment-service/internal/domain/gateway"
	apperrors "github.com/siseg/payment-service/pkg/errors"
)

const (
	defaultTimeout = 10 * time.Second
	// maxResponseBytes caps gateway response bodies; PIX QR images are the
	// largest payloads and stay well under 1 MiB.
	maxResponseBytes = 1 << 20

	userAgent = "SIGEG-Pagamento-Service/1.0"
)

// Client implements gateway.Client against the Asaas HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates an Asaas gateway client.
func NewClient(cfg *config.AsaasConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// customerList is the envelope the gateway wraps customer searches in.
type customerList struct {
	Data []gateway.Customer `json:"data"`
}

// FindCustomerByEmail searches the gateway customer directory by email.
// Returns nil when no customer with a non-empty id matches.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*gateway.Customer, error) {
	path := "/customers?email=" + url.QueryEscape(email)

	var list customerList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}

	if len(list.Data) == 0 || list.Data[0].ID == "" {
		return nil, nil
	}
	return &list.Data[0], nil
}

// CreateCustomer registers a new customer at the gateway.
func (c *Client) CreateCustomer(ctx context.Context, req *gateway.CustomerRequest) (*gateway.Customer, error) {
	var customer gateway.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", req, &customer); err != nil {
		return nil, err
	}

	if customer.ID == "" {
		return nil, apperrors.NewAppError(apperrors.ErrGateway, "gateway returned an empty customer record", nil)
	}
	return &customer, nil
}

// CreateCharge creates a payment charge.
func (c *Client) CreateCharge(ctx context.Context, req *gateway.ChargeRequest) (*gateway.Charge, error) {
	var charge gateway.Charge
	if err := c.do(ctx, http.MethodPost, "/payments", req, &charge); err != nil {
		return nil, err
	}

	if charge.ID == "" {
		return nil, apperrors.NewAppError(apperrors.ErrGateway, "gateway returned an empty charge record", nil)
	}

	c.logger.Info("gateway charge created",
		zap.String("charge_id", charge.ID),
		zap.String("billing_type", charge.BillingType),
		zap.String("gateway_status", charge.Status),
	)
	return &charge, nil
}

// GetCharge fetches a charge by id.
func (c *Client) GetCharge(ctx context.Context, chargeID string) (*gateway.Charge, error) {
	var charge gateway.Charge
	if err := c.do(ctx, http.MethodGet, "/payments/"+url.PathEscape(chargeID), nil, &charge); err != nil {
		return nil, err
	}
	return &charge, nil
}

// GetPixQRCode fetches the PIX QR code for a charge.
func (c *Client) GetPixQRCode(ctx context.Context, chargeID string) (*gateway.PixQRCode, error) {
	var qr gateway.PixQRCode
	if err := c.do(ctx, http.MethodGet, "/payments/"+url.PathEscape(chargeID)+"/pixQrCode", nil, &qr); err != nil {
		return nil, err
	}
	return &qr, nil
}

// RefundCharge refunds a charge. The description is optional.
func (c *Client) RefundCharge(ctx context.Context, chargeID string, description string) (*gateway.Refund, error) {
	body := map[string]string{}
	if description != "" {
		body["description"] = description
	}

	var refund gateway.Refund
	if err := c.do(ctx, http.MethodPost, "/payments/"+url.PathEscape(chargeID)+"/refund", body, &refund); err != nil {
		return nil, err
	}

	if refund.ID == "" {
		return nil, apperrors.NewAppError(apperrors.ErrGateway, "gateway returned an empty refund record", nil)
	}
	return &refund, nil
}

// do performs one gateway round trip. Connectivity failures, timeouts,
// non-2xx responses, and undecodable bodies all surface as GATEWAY_ERROR.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrGateway, "failed to encode gateway request", err)
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrGateway, "failed to build gateway request", err)
	}

	req.Header.Set("access_token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("gateway request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return apperrors.NewAppError(apperrors.ErrGateway, "failed to reach the payment gateway", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrGateway, "failed to read gateway response", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("gateway returned an error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)),
		)
		return apperrors.NewAppError(apperrors.ErrGateway,
			fmt.Sprintf("gateway returned HTTP %d", resp.StatusCode),
			apperrors.New(string(respBody)))
	}

	if len(respBody) == 0 {
		return apperrors.NewAppError(apperrors.ErrGateway, "gateway returned an empty response", nil)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return apperrors.NewAppError(apperrors.ErrGateway, "failed to decode gateway response", err)
	}

	return nil
}
