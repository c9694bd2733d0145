package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"modeleval-api/internal/apperrors"
	"modeleval-api/internal/model"
)

type SubscriptionRepository interface {
	// Upsert inserts the subscription or, when a row with the same
	// stripe_subscription_id exists, converges it to the latest status and
	// billing period. Safe under redelivery and out-of-order events.
	Upsert(ctx context.Context, sub *model.EnterpriseSubscription) error
	Cancel(ctx context.Context, stripeSubscriptionID string) error
	FindByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*model.EnterpriseSubscription, error)
}

type subscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepoImpl{
		db: db,
	}
}

func (r *subscriptionRepoImpl) Upsert(ctx context.Context, sub *model.EnterpriseSubscription) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stripe_subscription_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status",
				"current_period_start",
				"current_period_end",
				"updated_at",
			}),
		}).
		Create(sub).Error

	if err != nil {
		return apperrors.Query(err)
	}
	return nil
}

func (r *subscriptionRepoImpl) Cancel(ctx context.Context, stripeSubscriptionID string) error {
	err := r.db.WithContext(ctx).
		Model(&model.EnterpriseSubscription{}).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		Update("status", "canceled").
		Error

	if err != nil {
		return apperrors.Query(err)
	}
	return nil
}

func (r *subscriptionRepoImpl) FindByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*model.EnterpriseSubscription, error) {
	var sub model.EnterpriseSubscription
	err := r.db.WithContext(ctx).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		First(&sub).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("subscription")
	}
	if err != nil {
		return nil, apperrors.Query(err)
	}

	return &sub, nil
}
