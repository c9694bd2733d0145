package model

import "time"

type EvaluationOrder struct {
	ID                    string `gorm:"primaryKey;size:36;not null"` // generated at checkout, uuid
	StripeSessionID       string `gorm:"size:128;index"`
	StripePaymentIntentID string `gorm:"size:128"`
	Email                 string `gorm:"size:255;not null"`
	ModelName             string `gorm:"size:255;not null"`
	HuggingfaceURL        string `gorm:"size:512;not null"`
	ProductType           string `gorm:"size:32;not null"`       // single, pack, enterprise
	AmountCents           int64  `gorm:"not null"`               // minor currency units
	PaymentStatus         string `gorm:"size:32;index;not null"` // pending, paid, failed
	EvaluationStatus      string `gorm:"size:32;not null"`       // queued, running, completed; owned by the eval worker after queued
	ResultsJSON           *string
	ReportURL             *string `gorm:"size:512"`
	CertificateURL        *string `gorm:"size:512"`
	CreatedAt             time.Time
	PaidAt                *time.Time
	CompletedAt           *time.Time
}

func (EvaluationOrder) TableName() string {
	return "evaluation_orders"
}

// EnterpriseSubscription is keyed by the external subscription id, which
// makes repeated created/updated events converge on one row.
type EnterpriseSubscription struct {
	StripeSubscriptionID string `gorm:"primaryKey;size:128;not null"`
	OrderID              string `gorm:"size:36;index;not null"` // originating order
	StripeCustomerID     string `gorm:"size:128;index"`
	Email                string `gorm:"size:255;not null"`
	Status               string `gorm:"size:32;not null"` // stripe subscription status vocabulary
	CurrentPeriodStart   time.Time
	CurrentPeriodEnd     time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (EnterpriseSubscription) TableName() string {
	return "enterprise_subscriptions"
}

// WebhookEvent is an audit row per processed provider event. It is never
// consulted for dedup; replay safety comes from the guarded order updates
// and the keyed subscription upsert.
type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
