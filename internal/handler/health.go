package handler

import (
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"modeleval-api/internal/config"
	"modeleval-api/internal/dto"
)

type HealthHandler struct {
	db  *gorm.DB
	env dto.HealthEnvironment
}

func NewHealthHandler(db *gorm.DB, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		db: db,
		env: dto.HealthEnvironment{
			Name:           cfg.Environment.Name,
			HasDatabaseURL: cfg.DatabaseURL != "",
		},
	}
}

// Health runs one trivial round trip against the database. On failure the
// raw driver error and Postgres error code are reported for operator
// diagnosis; nothing retries.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()

	var probe struct {
		CurrentTime time.Time `gorm:"column:current_time"`
		PgVersion   string    `gorm:"column:pg_version"`
	}
	err := h.db.WithContext(ctx).
		Raw("SELECT NOW() AS current_time, version() AS pg_version").
		Scan(&probe).Error

	if err != nil {
		code := ""
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			code = pgErr.Code
		}
		c.Logger().Errorf("health check failed: %v\n%s", err, debug.Stack())

		return c.JSON(http.StatusInternalServerError, &dto.HealthResponse{
			Status:      "unhealthy",
			Error:       err.Error(),
			Code:        code,
			Environment: h.env,
		})
	}

	return c.JSON(http.StatusOK, &dto.HealthResponse{
		Status:          "healthy",
		Database:        "connected",
		Timestamp:       probe.CurrentTime.Format(time.RFC3339Nano),
		PostgresVersion: probe.PgVersion,
		Environment:     h.env,
	})
}
