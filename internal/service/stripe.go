package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/stripe/stripe-go/v81"

	"modeleval-api/internal/apperrors"
	"modeleval-api/internal/client"
	"modeleval-api/internal/dto"
	"modeleval-api/internal/model"
	"modeleval-api/internal/pricing"
	"modeleval-api/internal/repository"
)

type StripeService interface {
	CreateCheckout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

type stripeServiceImpl struct {
	stripeClient     client.StripeClient
	orderRepo        repository.OrderRepository
	subscriptionRepo repository.SubscriptionRepository
	webhookEventRepo repository.WebhookEventRepository
}

func NewStripeService(
	stripeClient client.StripeClient,
	orderRepo repository.OrderRepository,
	subscriptionRepo repository.SubscriptionRepository,
	webhookEventRepo repository.WebhookEventRepository,
) StripeService {
	return &stripeServiceImpl{
		stripeClient:     stripeClient,
		orderRepo:        orderRepo,
		subscriptionRepo: subscriptionRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

func (s *stripeServiceImpl) CreateCheckout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	price, ok := pricing.Resolve(req.ProductType)
	if !ok {
		return nil, apperrors.Validation("invalid product type")
	}

	orderID := uuid.NewString()

	sess, err := s.stripeClient.CreateCheckoutSession(ctx, &client.CheckoutSessionInput{
		OrderID:        orderID,
		Email:          req.Email,
		ModelName:      req.ModelName,
		HuggingfaceURL: req.HuggingfaceURL,
		ProductType:    req.ProductType,
		Price:          price,
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	// Written only after the remote session succeeds. A session whose local
	// write fails here is a known gap: the webhook for it will find no
	// order and skip.
	err = s.orderRepo.Create(ctx, &model.EvaluationOrder{
		ID:               orderID,
		StripeSessionID:  sess.SessionID,
		Email:            req.Email,
		ModelName:        req.ModelName,
		HuggingfaceURL:   req.HuggingfaceURL,
		ProductType:      req.ProductType,
		AmountCents:      price.AmountCents,
		PaymentStatus:    "pending",
		EvaluationStatus: "queued",
	})
	if err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	return &dto.CheckoutResponse{
		SessionID: sess.SessionID,
		URL:       sess.URL,
	}, nil
}

// HandleWebhook verifies the event signature and applies the matching
// state transition. Once the signature verifies, a nil return means the
// provider must not redeliver, so unknown order ids and absent sessions
// are skipped rather than surfaced. A returned error becomes a 500 and
// triggers provider-side redelivery, the only retry mechanism here.
func (s *stripeServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.stripeClient.VerifyWebhookEvent(payload, signatureHeader)
	if err != nil {
		return err
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		err = s.handleCheckoutCompleted(ctx, &event)
	case stripe.EventTypeCheckoutSessionExpired:
		err = s.handleCheckoutExpired(ctx, &event)
	case stripe.EventTypeCustomerSubscriptionCreated, stripe.EventTypeCustomerSubscriptionUpdated:
		err = s.handleSubscriptionUpserted(ctx, &event)
	case stripe.EventTypeCustomerSubscriptionDeleted:
		err = s.handleSubscriptionDeleted(ctx, &event)
	default:
		log.Infof("unhandled event type: %s", event.Type)
	}
	if err != nil {
		return err
	}

	if err := s.webhookEventRepo.Record(ctx, event.ID, string(event.Type)); err != nil {
		log.Warnf("record webhook event %s: %v", event.ID, err)
	}

	return nil
}

func (s *stripeServiceImpl) handleCheckoutCompleted(ctx context.Context, event *stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	orderID := sess.Metadata["orderId"]
	if orderID == "" {
		log.Warnf("checkout session %s completed without orderId metadata, skipping", sess.ID)
		return nil
	}

	paymentIntentID := ""
	if sess.PaymentIntent != nil {
		paymentIntentID = sess.PaymentIntent.ID
	}

	applied, err := s.orderRepo.MarkPaid(ctx, orderID, paymentIntentID)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if !applied {
		// Replay, or an order already in a terminal state.
		log.Infof("order %s not transitioned to paid, skipping", orderID)
		return nil
	}

	log.Infof("payment successful for order %s (model %s)", orderID, sess.Metadata["modelName"])
	return nil
}

func (s *stripeServiceImpl) handleCheckoutExpired(ctx context.Context, event *stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	orderID := sess.Metadata["orderId"]
	if orderID == "" {
		log.Warnf("checkout session %s expired without orderId metadata, skipping", sess.ID)
		return nil
	}

	// Pending guard: an order the completed event already marked paid is
	// not reverted by a late expiry.
	applied, err := s.orderRepo.MarkFailed(ctx, orderID)
	if err != nil {
		return fmt.Errorf("mark order failed: %w", err)
	}
	if !applied {
		log.Infof("order %s not transitioned to failed, skipping", orderID)
	}

	return nil
}

func (s *stripeServiceImpl) handleSubscriptionUpserted(ctx context.Context, event *stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}

	sess, err := s.stripeClient.FindCheckoutSessionBySubscription(ctx, sub.ID)
	if err != nil {
		return fmt.Errorf("find checkout session for subscription %s: %w", sub.ID, err)
	}
	if sess == nil {
		log.Warnf("no checkout session for subscription %s, skipping", sub.ID)
		return nil
	}

	orderID := sess.Metadata["orderId"]
	email := sess.CustomerEmail
	if orderID == "" || email == "" {
		log.Warnf("subscription %s session lacks order metadata or email, skipping", sub.ID)
		return nil
	}

	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}

	err = s.subscriptionRepo.Upsert(ctx, &model.EnterpriseSubscription{
		OrderID:              orderID,
		StripeSubscriptionID: sub.ID,
		StripeCustomerID:     customerID,
		Email:                email,
		Status:               string(sub.Status),
		CurrentPeriodStart:   time.Unix(sub.CurrentPeriodStart, 0),
		CurrentPeriodEnd:     time.Unix(sub.CurrentPeriodEnd, 0),
	})
	if err != nil {
		return fmt.Errorf("upsert subscription %s: %w", sub.ID, err)
	}

	return nil
}

func (s *stripeServiceImpl) handleSubscriptionDeleted(ctx context.Context, event *stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}

	if err := s.subscriptionRepo.Cancel(ctx, sub.ID); err != nil {
		return fmt.Errorf("cancel subscription %s: %w", sub.ID, err)
	}

	return nil
}
