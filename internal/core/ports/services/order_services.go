package services

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/dto"
)

// OrderReaderSvc defines read operations for orders
type OrderReaderSvc interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

// OrderWriterSvc defines write operations for orders
type OrderWriterSvc interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, actorID string) (*domain.Order, error)
	// UpdateOrderStatus rejects disallowed transitions. When expectedVersion is set and
	// the row has moved on, it returns apperrors.ErrConflict.
	UpdateOrderStatus(ctx context.Context, orderID string, to domain.OrderStatus, expectedVersion *int, actorID string) (*domain.Order, error)
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}
