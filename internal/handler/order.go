package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"modeleval-api/internal/apperrors"
	"modeleval-api/internal/dto"
	"modeleval-api/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
	baseURL      string
}

func NewOrderHandler(orderService service.OrderService, baseURL string) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		baseURL:      baseURL,
	}
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("id")

	order, err := h.orderService.Get(ctx, orderID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}
	if err != nil {
		return fmt.Errorf("fetch order: %w", err)
	}

	// Browser return from a completed checkout lands here with
	// ?success=true; send the buyer to the thank-you view.
	if c.QueryParam("success") == "true" && order.PaymentStatus == "paid" {
		return c.Redirect(http.StatusFound, fmt.Sprintf("%s/thank-you?orderId=%s", h.baseURL, orderID))
	}

	return c.JSON(http.StatusOK, &dto.OrderResponse{Order: *order})
}
