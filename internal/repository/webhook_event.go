package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"modeleval-api/internal/apperrors"
	"modeleval-api/internal/model"
)

// WebhookEventRepository keeps an audit trail of processed provider
// events. Recording is best-effort; nothing reads it on the hot path.
type WebhookEventRepository interface {
	Record(ctx context.Context, eventID, eventType string) error
}

type webhookEventRepoImpl struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepoImpl{db: db}
}

func (r *webhookEventRepoImpl) Record(ctx context.Context, eventID, eventType string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.WebhookEvent{
			EventID:     eventID,
			EventType:   eventType,
			ProcessedAt: time.Now(),
		}).Error

	if err != nil {
		return apperrors.Query(err)
	}
	return nil
}
