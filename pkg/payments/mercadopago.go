package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// StatusApproved is the only payment status that triggers activation.
const StatusApproved = "approved"

// PreferenceItem is a line item on a checkout preference
type PreferenceItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	CurrencyID  string  `json:"currency_id"`
	UnitPrice   float64 `json:"unit_price"`
}

// PreferencePayer identifies the paying user on a preference
type PreferencePayer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// BackURLs are the redirect targets after checkout
type BackURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

// PreferenceRequest is the body sent to create a checkout preference
type PreferenceRequest struct {
	Items               []PreferenceItem       `json:"items"`
	Payer               *PreferencePayer       `json:"payer,omitempty"`
	BackURLs            *BackURLs              `json:"back_urls,omitempty"`
	AutoReturn          string                 `json:"auto_return,omitempty"`
	NotificationURL     string                 `json:"notification_url,omitempty"`
	ExternalReference   string                 `json:"external_reference,omitempty"`
	StatementDescriptor string                 `json:"statement_descriptor,omitempty"`
	Metadata            map[string]interface{} `json:"metadata,omitempty"`
}

// Preference is the created checkout preference
type Preference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// Payment is the verified state of a payment as reported by the processor
type Payment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	ExternalReference string  `json:"external_reference"`
	TransactionAmount float64 `json:"transaction_amount"`
}

// Gateway is the narrow surface of the payment processor the backend
// consumes: creating checkout preferences and verifying notified payments.
type Gateway interface {
	CreatePreference(ctx context.Context, req *PreferenceRequest) (*Preference, error)
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}

// MercadoPagoClient implements Gateway against the Mercado Pago REST API
type MercadoPagoClient struct {
	http *resty.Client
}

// NewMercadoPagoClient creates a client authenticated with the given access
// token
func NewMercadoPagoClient(accessToken string) *MercadoPagoClient {
	client := resty.New().
		SetBaseURL("https://api.mercadopago.com").
		SetTimeout(5 * time.Second).
		SetAuthToken(accessToken)
	return &MercadoPagoClient{http: client}
}

// CreatePreference creates a checkout preference for a premium purchase
func (c *MercadoPagoClient) CreatePreference(ctx context.Context, req *PreferenceRequest) (*Preference, error) {
	var preference Preference
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Idempotency-Key", uuid.NewString()).
		SetBody(req).
		SetResult(&preference).
		Post("/checkout/preferences")
	if err != nil {
		return nil, fmt.Errorf("mercadopago: create preference: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mercadopago: create preference failed with status %s", resp.Status())
	}
	return &preference, nil
}

// GetPayment fetches the authoritative state of a payment by ID. The
// webhook never trusts the notification body; this call is the verification
// step.
func (c *MercadoPagoClient) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	var payment Payment
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payment).
		Get("/v1/payments/" + paymentID)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: get payment %s: %w", paymentID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mercadopago: get payment %s failed with status %s", paymentID, resp.Status())
	}
	return &payment, nil
}
