package dto

import "time"

type CheckoutRequest struct {
	Email          string `json:"email" validate:"required,email"`
	ModelName      string `json:"modelName" validate:"required"`
	HuggingfaceURL string `json:"huggingfaceUrl" validate:"required,url"`
	ProductType    string `json:"productType" validate:"required"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// OrderView is the public projection of an order. Payment-session and
// payment-intent identifiers are deliberately not exposed.
type OrderView struct {
	ID               string     `json:"id"`
	ModelName        string     `json:"modelName"`
	HuggingfaceURL   string     `json:"huggingfaceUrl"`
	ProductType      string     `json:"productType"`
	PaymentStatus    string     `json:"paymentStatus"`
	EvaluationStatus string     `json:"evaluationStatus"`
	Results          *string    `json:"results"`
	ReportURL        *string    `json:"reportUrl"`
	CertificateURL   *string    `json:"certificateUrl"`
	CreatedAt        time.Time  `json:"createdAt"`
	PaidAt           *time.Time `json:"paidAt"`
	CompletedAt      *time.Time `json:"completedAt"`
}

type OrderResponse struct {
	Order OrderView `json:"order"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}

type HealthEnvironment struct {
	Name           string `json:"name"`
	HasDatabaseURL bool   `json:"hasDatabaseUrl"`
}

type HealthResponse struct {
	Status          string            `json:"status"`
	Database        string            `json:"database,omitempty"`
	Timestamp       string            `json:"timestamp,omitempty"`
	PostgresVersion string            `json:"postgresVersion,omitempty"`
	Error           string            `json:"error,omitempty"`
	Code            string            `json:"code,omitempty"`
	Environment     HealthEnvironment `json:"environment"`
}
