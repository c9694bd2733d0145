package service

import (
	"context"

	"modeleval-api/internal/dto"
	"modeleval-api/internal/repository"
)

type OrderService interface {
	Get(ctx context.Context, orderID string) (*dto.OrderView, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) Get(ctx context.Context, orderID string) (*dto.OrderView, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &dto.OrderView{
		ID:               order.ID,
		ModelName:        order.ModelName,
		HuggingfaceURL:   order.HuggingfaceURL,
		ProductType:      order.ProductType,
		PaymentStatus:    order.PaymentStatus,
		EvaluationStatus: order.EvaluationStatus,
		Results:          order.ResultsJSON,
		ReportURL:        order.ReportURL,
		CertificateURL:   order.CertificateURL,
		CreatedAt:        order.CreatedAt,
		PaidAt:           order.PaidAt,
		CompletedAt:      order.CompletedAt,
	}, nil
}
