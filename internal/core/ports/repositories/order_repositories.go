package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// OrderReader defines read operations for orders.
type OrderReader interface {
	// FindOrderByID returns the order with its items in position order.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

// OrderWriter defines write operations for orders.
type OrderWriter interface {
	// SaveOrder inserts the order and its items, filling in the generated order number.
	SaveOrder(ctx context.Context, order *domain.Order) error
	// UpdateOrderStatus moves the order from one status to another. When expectedVersion is set,
	// the update only applies to that version and returns apperrors.ErrConflict otherwise.
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, expectedVersion *int, updatedAt time.Time, updatedBy string) (*domain.Order, error)
}

// OrderRepositoryFacade combines all order repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}
