package handlers_test

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock StaffAuthService ---
type MockStaffAuthService struct {
	mock.Mock
}

var _ portssvc.StaffAuthSvc = (*MockStaffAuthService)(nil)

func (m *MockStaffAuthService) Login(ctx context.Context, username, password string) (*domain.StaffSession, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffSession), args.Error(1)
}

// --- Mock OrderService ---
type MockOrderService struct {
	mock.Mock
}

var _ portssvc.OrderSvcFacade = (*MockOrderService)(nil)

func (m *MockOrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, actorID string) (*domain.Order, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, orderID string, to domain.OrderStatus, expectedVersion *int, actorID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, to, expectedVersion, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

func (m *MockTransferService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, actor domain.Actor) (*domain.BarTransfer, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BarTransfer), args.Error(1)
}

func (m *MockTransferService) AcceptTransfer(ctx context.Context, transferID string, actor domain.Actor) (*domain.BarTransfer, error) {
	args := m.Called(ctx, transferID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BarTransfer), args.Error(1)
}

func (m *MockTransferService) RejectTransfer(ctx context.Context, transferID string, actor domain.Actor) (*domain.BarTransfer, error) {
	args := m.Called(ctx, transferID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BarTransfer), args.Error(1)
}

func (m *MockTransferService) ListPendingForBar(ctx context.Context, barID string) ([]domain.BarTransfer, error) {
	args := m.Called(ctx, barID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BarTransfer), args.Error(1)
}

func (m *MockTransferService) ListTransfers(ctx context.Context, limit int) ([]domain.BarTransfer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BarTransfer), args.Error(1)
}

// --- Mock StaffService ---
type MockStaffService struct {
	mock.Mock
}

var _ portssvc.StaffSvcFacade = (*MockStaffService)(nil)

func (m *MockStaffService) GetStaff(ctx context.Context, staffID string) (*domain.StaffIdentity, error) {
	args := m.Called(ctx, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffIdentity), args.Error(1)
}

func (m *MockStaffService) ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffIdentity, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffIdentity), args.Error(1)
}

func (m *MockStaffService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest, actorID string) (*domain.StaffIdentity, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffIdentity), args.Error(1)
}

func (m *MockStaffService) UpdateStaff(ctx context.Context, staffID string, req dto.UpdateStaffRequest, actorID string) (*domain.StaffIdentity, error) {
	args := m.Called(ctx, staffID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffIdentity), args.Error(1)
}

func (m *MockStaffService) ResetPassword(ctx context.Context, staffID, newPassword, actorID string) error {
	return m.Called(ctx, staffID, newPassword, actorID).Error(0)
}

func (m *MockStaffService) ImportLegacyStaff(ctx context.Context, records []domain.LegacyStaffRecord, actorID string) []domain.StaffImportResult {
	args := m.Called(ctx, records, actorID)
	return args.Get(0).([]domain.StaffImportResult)
}
