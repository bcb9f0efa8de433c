package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"commerce-admin-backend/internal/domains/order/model"
)

// =====================================================
// HTTP CLIENT FOR THE COMMERCE PLATFORM API
// =====================================================

type commerceClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewCommerceClient creates a gateway backed by the platform's REST API.
func NewCommerceClient(baseURL, apiKey string, timeout time.Duration) CommerceGateway {
	return &commerceClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// platformError is the error envelope the platform returns on non-2xx.
type platformError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *commerceClient) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	url := fmt.Sprintf("%s/admin/orders/%s", c.baseURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order fetch failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp.StatusCode, body)
	}

	var order model.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	return &order, nil
}

func (c *commerceClient) SubmitRefund(ctx context.Context, submission RefundSubmission) (*SubmitRefundResult, error) {
	url := fmt.Sprintf("%s/admin/orders/%s/refunds", c.baseURL, submission.OrderID)

	payload, err := json.Marshal(submission)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal refund submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build refund request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refund submission failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read refund response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.decodeError(resp.StatusCode, body)
	}

	var result SubmitRefundResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode refund response: %w", err)
	}

	return &result, nil
}

func (c *commerceClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

func (c *commerceClient) decodeError(status int, body []byte) error {
	var pe platformError
	if err := json.Unmarshal(body, &pe); err == nil && pe.Message != "" {
		return fmt.Errorf("platform returned %d: %s (%s)", status, pe.Message, pe.Code)
	}
	return fmt.Errorf("platform returned %d: %s", status, string(body))
}
