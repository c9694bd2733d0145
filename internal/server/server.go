package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"modeleval-api/internal/apperrors"
	"modeleval-api/internal/config"
	"modeleval-api/internal/handler"
	"modeleval-api/internal/service"
)

type Server struct {
	echo          *echo.Echo
	stripeHandler *handler.StripeHandler
	orderHandler  *handler.OrderHandler
	healthHandler *handler.HealthHandler
}

func NewServer(cfg *config.Config, db *gorm.DB, stripeService service.StripeService, orderService service.OrderService) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = httpErrorHandler

	s := &Server{
		echo:          e,
		stripeHandler: handler.NewStripeHandler(stripeService),
		orderHandler:  handler.NewOrderHandler(orderService, cfg.BaseURL),
		healthHandler: handler.NewHealthHandler(db, cfg),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthHandler.Health)
	s.echo.GET("/orders/:id", s.orderHandler.GetOrder)

	// -------- stripe --------
	s.echo.POST("/checkout", s.stripeHandler.CreateCheckout)
	s.echo.POST("/webhook", s.stripeHandler.Webhook)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// httpErrorHandler maps the error taxonomy to transport responses.
// Handlers render validation, signature, and not-found outcomes
// themselves; everything reaching here is either an echo routing error or
// a processing failure that must not leak internal detail.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, map[string]string{"error": fmt.Sprintf("%v", he.Message)})
		return
	}

	status := http.StatusInternalServerError
	msg := "Internal server error"
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrSignature):
		status = http.StatusBadRequest
		msg = "Bad request"
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		msg = "Not found"
	}

	c.Logger().Error(err)
	_ = c.JSON(status, map[string]string{"error": msg})
}
