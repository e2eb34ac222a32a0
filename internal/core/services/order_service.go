package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/google/uuid"
)

const defaultOrderListLimit = 50

// orderService implements OrderSvcFacade.
type orderService struct {
	BaseService
	orderRepo portsrepo.OrderRepositoryFacade
}

// NewOrderService creates the order service.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade) portssvc.OrderSvcFacade {
	return &orderService{orderRepo: orderRepo}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to find order", slog.String("order_id", orderID))
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultOrderListLimit
	}
	for _, status := range filter.Statuses {
		if !status.IsValid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown order status %q", status))
		}
	}
	orders, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders")
		return nil, err
	}
	if orders == nil {
		return []domain.Order{}, nil
	}
	return orders, nil
}

// CreateOrder turns a POS cart into a pending order. Totals are computed here, never taken from the client.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, actorID string) (*domain.Order, error) {
	orderType := domain.OrderType(req.OrderType)
	if !orderType.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown order type %q", req.OrderType))
	}
	if len(req.Items) == 0 {
		return nil, apperrors.NewValidationFailedError("an order needs at least one item")
	}

	order := domain.Order{
		OrderID:     uuid.NewString(),
		OrderType:   orderType,
		TableNumber: req.TableNumber,
		Status:      domain.OrderPending,
		Notes:       req.Notes,
		Version:     1,
		AuditFields: domain.NewAuditFields(s.now(), actorID),
	}
	for i, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("item %d: quantity must be positive", i+1))
		}
		if line.UnitPrice.IsNegative() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("item %d: unit price cannot be negative", i+1))
		}
		order.Items = append(order.Items, domain.OrderItem{
			OrderItemID: uuid.NewString(),
			OrderID:     order.OrderID,
			MenuItemID:  line.MenuItemID,
			Name:        line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Notes:       line.Notes,
			Position:    i,
		})
	}
	order.Total = order.CalculateTotal()

	if err := s.orderRepo.SaveOrder(ctx, &order); err != nil {
		s.LogError(ctx, err, "Failed to save order")
		return nil, err
	}

	s.LogInfo(ctx, "Order created",
		slog.String("order_id", order.OrderID),
		slog.Int64("order_number", order.OrderNumber),
		slog.String("type", string(order.OrderType)))
	return &order, nil
}

// UpdateOrderStatus moves an order one step forward or cancels it.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, to domain.OrderStatus, expectedVersion *int, actorID string) (*domain.Order, error) {
	if !to.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown order status %q", to))
	}

	current, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to find order for status update", slog.String("order_id", orderID))
		return nil, err
	}
	if expectedVersion != nil && *expectedVersion != current.Version {
		return nil, apperrors.NewAppError(http.StatusConflict, "Order was changed by someone else; reload and try again", apperrors.ErrConflict)
	}
	if !current.Status.CanTransition(to) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("cannot move order from %s to %s", current.Status, to))
	}

	updated, err := s.orderRepo.UpdateOrderStatus(ctx, orderID, current.Status, to, expectedVersion, s.now(), actorID)
	if err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to update order status", slog.String("order_id", orderID))
		return nil, err
	}

	s.LogInfo(ctx, "Order status updated",
		slog.String("order_id", orderID),
		slog.String("from", string(current.Status)),
		slog.String("to", string(to)))
	return updated, nil
}
