package client

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	stripeclient "github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"

	"modeleval-api/internal/apperrors"
	"modeleval-api/internal/config"
	"modeleval-api/internal/pricing"
)

type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, in *CheckoutSessionInput) (*CheckoutSessionResult, error)
	// FindCheckoutSessionBySubscription returns the checkout session that
	// started the given subscription, or nil when none exists.
	FindCheckoutSessionBySubscription(ctx context.Context, subscriptionID string) (*stripe.CheckoutSession, error)
	VerifyWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error)
}

type CheckoutSessionInput struct {
	OrderID        string
	Email          string
	ModelName      string
	HuggingfaceURL string
	ProductType    string
	Price          pricing.Price
}

type CheckoutSessionResult struct {
	SessionID string
	URL       string
}

type stripeClientImpl struct {
	api           *stripeclient.API
	webhookSecret string
	baseURL       string
}

func NewStripeClient(stripeCfg *config.Stripe, baseURL string) StripeClient {
	api := &stripeclient.API{}
	api.Init(stripeCfg.SecretKey, nil)

	return &stripeClientImpl{
		api:           api,
		webhookSecret: stripeCfg.WebhookSecret,
		baseURL:       baseURL,
	}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, in *CheckoutSessionInput) (*CheckoutSessionResult, error) {
	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:        stripe.String(in.Price.Name),
			Description: stripe.String(in.Price.Description),
		},
		UnitAmount: stripe.Int64(in.Price.AmountCents),
	}

	mode := stripe.CheckoutSessionModePayment
	if in.Price.Recurring {
		mode = stripe.CheckoutSessionModeSubscription
		priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		}
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: priceData,
				Quantity:  stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(mode)),
		SuccessURL:    stripe.String(fmt.Sprintf("%s/orders/%s?success=true", c.baseURL, in.OrderID)),
		CancelURL:     stripe.String(c.baseURL + "/evaluation?canceled=true"),
		CustomerEmail: stripe.String(in.Email),
	}
	params.Context = ctx

	// The metadata bag is the only channel by which the webhook later
	// recovers order identity.
	params.AddMetadata("orderId", in.OrderID)
	params.AddMetadata("modelName", in.ModelName)
	params.AddMetadata("huggingfaceUrl", in.HuggingfaceURL)
	params.AddMetadata("productType", in.ProductType)

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, apperrors.Upstream(fmt.Errorf("create checkout session: %w", err))
	}

	return &CheckoutSessionResult{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}

func (c *stripeClientImpl) FindCheckoutSessionBySubscription(ctx context.Context, subscriptionID string) (*stripe.CheckoutSession, error) {
	listParams := &stripe.CheckoutSessionListParams{
		Subscription: stripe.String(subscriptionID),
	}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	it := c.api.CheckoutSessions.List(listParams)
	for it.Next() {
		return it.CheckoutSession(), nil
	}
	if err := it.Err(); err != nil {
		return nil, apperrors.Upstream(fmt.Errorf("list checkout sessions: %w", err))
	}

	return nil, nil
}

func (c *stripeClientImpl) VerifyWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, c.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, apperrors.Signature(err)
	}

	return event, nil
}
