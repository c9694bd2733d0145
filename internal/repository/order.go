package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"modeleval-api/internal/apperrors"
	"modeleval-api/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.EvaluationOrder) error
	FindByID(ctx context.Context, orderID string) (*model.EvaluationOrder, error)
	// MarkPaid moves a pending order to paid, recording the payment intent
	// and paid timestamp. Returns false when no row changed: unknown id,
	// replayed event, or an order already in a terminal state.
	MarkPaid(ctx context.Context, orderID, paymentIntentID string) (bool, error)
	// MarkFailed moves a pending order to failed. Same no-op semantics as
	// MarkPaid; in particular an already-paid order is never reverted.
	MarkFailed(ctx context.Context, orderID string) (bool, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.EvaluationOrder) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return apperrors.Query(err)
	}
	return nil
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.EvaluationOrder, error) {
	var order model.EvaluationOrder
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("order")
	}
	if err != nil {
		return nil, apperrors.Query(err)
	}

	return &order, nil
}

func (r *orderRepoImpl) MarkPaid(ctx context.Context, orderID, paymentIntentID string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.EvaluationOrder{}).
		Where("id = ? AND payment_status = ?", orderID, "pending").
		Updates(map[string]interface{}{
			"payment_status":           "paid",
			"stripe_payment_intent_id": paymentIntentID,
			"paid_at":                  time.Now(),
		})

	if result.Error != nil {
		return false, apperrors.Query(result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *orderRepoImpl) MarkFailed(ctx context.Context, orderID string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.EvaluationOrder{}).
		Where("id = ? AND payment_status = ?", orderID, "pending").
		Update("payment_status", "failed")

	if result.Error != nil {
		return false, apperrors.Query(result.Error)
	}

	return result.RowsAffected > 0, nil
}
