package khalti

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Canonical gateway statuses returned by the lookup endpoint.
const (
	StatusCompleted = "Completed"
	StatusPending   = "Pending"
	StatusExpired   = "Expired"
	StatusRefunded  = "Refunded"
	StatusCanceled  = "User canceled"
)

// Client defines the methods a payment gateway client must implement.
type Client interface {
	Initiate(ctx context.Context, req *InitiateRequest) (*InitiateResponse, error)
	Lookup(ctx context.Context, pidx string) (*LookupResponse, error)
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type AmountBreakdown struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type ProductDetail struct {
	Identity   string `json:"identity"`
	Name       string `json:"name"`
	TotalPrice int64  `json:"total_price"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
}

// InitiateRequest starts a hosted payment session. All amounts are in paisa.
type InitiateRequest struct {
	ReturnURL         string            `json:"return_url"`
	WebsiteURL        string            `json:"website_url"`
	Amount            int64             `json:"amount"`
	PurchaseOrderID   string            `json:"purchase_order_id"`
	PurchaseOrderName string            `json:"purchase_order_name"`
	CustomerInfo      *CustomerInfo     `json:"customer_info,omitempty"`
	AmountBreakdown   []AmountBreakdown `json:"amount_breakdown,omitempty"`
	ProductDetails    []ProductDetail   `json:"product_details,omitempty"`
	MerchantExtra     string            `json:"merchant_extra,omitempty"`
}

type InitiateResponse struct {
	Pidx       string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
	ExpiresAt  string `json:"expires_at"`
}

type LookupResponse struct {
	Pidx          string `json:"pidx"`
	TotalAmount   int64  `json:"total_amount"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Fee           int64  `json:"fee"`
	Refunded      bool   `json:"refunded"`
}

// GatewayError is returned when the gateway responds with a non-2xx status.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("khalti: gateway returned status %d: %s", e.StatusCode, e.Body)
}

type khaltiClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewKhaltiClient(baseURL, secretKey string) Client {
	return &khaltiClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *khaltiClient) Initiate(ctx context.Context, req *InitiateRequest) (*InitiateResponse, error) {

	var resp InitiateResponse
	if err := c.post(ctx, "/epayment/initiate/", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *khaltiClient) Lookup(ctx context.Context, pidx string) (*LookupResponse, error) {

	payload := map[string]string{"pidx": pidx}

	var resp LookupResponse
	if err := c.post(ctx, "/epayment/lookup/", payload, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *khaltiClient) post(ctx context.Context, path string, payload any, dest any) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	// Khalti uses "key", not "Bearer"
	req.Header.Set("Authorization", "key "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &GatewayError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return nil
}
