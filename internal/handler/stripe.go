package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"modeleval-api/internal/apperrors"
	"modeleval-api/internal/dto"
	"modeleval-api/internal/service"
)

type StripeHandler struct {
	stripeService service.StripeService
}

func NewStripeHandler(stripeService service.StripeService) *StripeHandler {
	return &StripeHandler{
		stripeService: stripeService,
	}
}

func (h *StripeHandler) CreateCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
	}

	resp, err := h.stripeService.CreateCheckout(ctx, &req)
	if errors.Is(err, apperrors.ErrValidation) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product type"})
	}
	if err != nil {
		return fmt.Errorf("create checkout: %w", err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *StripeHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	err = h.stripeService.HandleWebhook(ctx, body, c.Request().Header.Get("Stripe-Signature"))
	if errors.Is(err, apperrors.ErrSignature) {
		c.Logger().Warnf("webhook signature verification failed: %v", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid signature"})
	}
	if err != nil {
		// 500 here signals the provider to redeliver the event.
		return fmt.Errorf("handle webhook: %w", err)
	}

	return c.JSON(http.StatusOK, &dto.WebhookAck{Received: true})
}
