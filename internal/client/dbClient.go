package client

import (
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"modeleval-api/internal/apperrors"
	"modeleval-api/internal/model"
)

// NormalizeDatabaseURL replaces any sslmode parameter embedded in the
// connection string with sslmode=require: connections are always
// encrypted, but the server certificate is not verified (the managed
// database uses a self-signed cert).
func NormalizeDatabaseURL(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}

	q := u.Query()
	q.Set("sslmode", "require")
	u.RawQuery = q.Encode()

	return u.String()
}

// InitPostgresClient opens the process-wide connection pool and migrates
// the schema. Called exactly once at startup; the returned handle is safe
// for concurrent use and is injected into every component.
func InitPostgresClient(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("%w: empty database url", apperrors.ErrConnection)
	}

	db, err := gorm.Open(postgres.Open(NormalizeDatabaseURL(databaseURL)), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConnection, err)
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.EvaluationOrder{},
		&model.EnterpriseSubscription{},
		&model.WebhookEvent{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}
