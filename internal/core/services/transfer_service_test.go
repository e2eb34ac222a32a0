package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/core/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransferServiceTestSuite struct {
	suite.Suite
	transfers *MockTransferRepository
	inventory *MockInventoryRepository
	bars      *memBarRepository
	service   portssvc.TransferSvcFacade
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.transfers = new(MockTransferRepository)
	suite.inventory = new(MockInventoryRepository)
	suite.bars = newMemBarRepository(
		domain.Bar{BarID: "bar-a", Name: "Rooftop"},
		domain.Bar{BarID: "bar-b", Name: "Lobby"},
	)
	suite.bars.assignments = []domain.CashierBarAssignment{
		{IdentityID: "cashier-b", BarID: "bar-b", IsActive: true},
		{IdentityID: "cashier-a", BarID: "bar-a", IsActive: true},
	}
	suite.service = services.NewTransferService(suite.transfers, suite.inventory, suite.bars, &passthroughTx{})
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}

func pendingTransfer() *domain.BarTransfer {
	source := "bar-a"
	return &domain.BarTransfer{
		TransferID:       "t1",
		SourceBarID:      &source,
		DestinationBarID: "bar-b",
		ItemID:           "gin-a",
		Quantity:         decimal.NewFromInt(4),
		Status:           domain.TransferPending,
	}
}

func cashier(id string) domain.Actor {
	role := domain.RoleCashier
	return domain.Actor{ID: id, Kind: domain.KindStaff, Role: &role}
}

func (suite *TransferServiceTestSuite) TestAccept_ByDestinationMovesStock() {
	ctx := context.Background()
	barA, barB := "bar-a", "bar-b"
	sourceItem := &domain.InventoryItem{ItemID: "gin-a", BarID: &barA, Name: "Gin", Unit: "bottle", CurrentStock: decimal.NewFromInt(10)}
	destItem := &domain.InventoryItem{ItemID: "gin-b", BarID: &barB, Name: "Gin", Unit: "bottle", CurrentStock: decimal.NewFromInt(1)}

	suite.transfers.On("FindTransferForUpdate", ctx, "t1").Return(pendingTransfer(), nil).Once()
	suite.inventory.On("FindInventoryItemForUpdate", ctx, "gin-a").Return(sourceItem, nil)
	suite.inventory.On("FindInventoryItemByName", ctx, &barB, "Gin").Return(destItem, nil).Once()
	suite.inventory.On("FindInventoryItemForUpdate", ctx, "gin-b").Return(destItem, nil).Once()
	suite.inventory.On("UpdateStockLevel", ctx, "gin-a", mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(6)) }), mock.Anything, "cashier-b").Return(nil).Once()
	suite.inventory.On("UpdateStockLevel", ctx, "gin-b", mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(5)) }), mock.Anything, "cashier-b").Return(nil).Once()
	suite.inventory.On("SaveStockMovement", ctx, mock.AnythingOfType("domain.StockMovement")).Return(nil).Twice()
	suite.transfers.On("UpdateTransferStatus", ctx, "t1", domain.TransferCompleted, "cashier-b", mock.Anything).Return(nil).Once()
	completed := pendingTransfer()
	completed.Status = domain.TransferCompleted
	suite.transfers.On("FindTransferByID", ctx, "t1").Return(completed, nil).Once()

	got, err := suite.service.AcceptTransfer(ctx, "t1", cashier("cashier-b"))

	suite.Require().NoError(err)
	suite.Equal(domain.TransferCompleted, got.Status)
	suite.inventory.AssertExpectations(suite.T())
	suite.transfers.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestAccept_BySourceBarIsForbidden() {
	ctx := context.Background()
	suite.transfers.On("FindTransferForUpdate", ctx, "t1").Return(pendingTransfer(), nil).Once()

	_, err := suite.service.AcceptTransfer(ctx, "t1", cashier("cashier-a"))

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.inventory.AssertNotCalled(suite.T(), "UpdateStockLevel", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestAccept_InsufficientStock() {
	ctx := context.Background()
	suite.transfers.On("FindTransferForUpdate", ctx, "t1").Return(pendingTransfer(), nil).Once()
	suite.inventory.On("FindInventoryItemForUpdate", ctx, "gin-a").Return(&domain.InventoryItem{ItemID: "gin-a", Name: "Gin", CurrentStock: decimal.NewFromInt(2)}, nil).Once()

	manager := domain.RoleManager
	_, err := suite.service.AcceptTransfer(ctx, "t1", domain.Actor{ID: "m1", Role: &manager})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestReject_AlreadyAnswered() {
	ctx := context.Background()
	answered := pendingTransfer()
	answered.Status = domain.TransferRejected
	suite.transfers.On("FindTransferForUpdate", ctx, "t1").Return(answered, nil).Once()

	_, err := suite.service.RejectTransfer(ctx, "t1", cashier("cashier-b"))

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TransferServiceTestSuite) TestCreate_ItemMustBeAtSource() {
	ctx := context.Background()
	barB := "bar-b"
	suite.inventory.On("FindInventoryItemByID", ctx, "gin-b").Return(&domain.InventoryItem{ItemID: "gin-b", BarID: &barB}, nil).Once()

	source := "bar-a"
	_, err := suite.service.CreateTransfer(ctx, dto.CreateTransferRequest{
		SourceBarID:      &source,
		DestinationBarID: "bar-b",
		ItemID:           "gin-b",
		Quantity:         decimal.NewFromInt(1),
	}, cashier("cashier-b"))

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestCreate_FromStore() {
	ctx := context.Background()
	suite.inventory.On("FindInventoryItemByID", ctx, "store-gin").Return(&domain.InventoryItem{ItemID: "store-gin", Name: "Gin"}, nil).Once()
	suite.transfers.On("SaveTransfer", ctx, mock.MatchedBy(func(t domain.BarTransfer) bool {
		return t.SourceBarID == nil && t.Status == domain.TransferPending && t.RequestedBy == "cashier-b"
	})).Return(nil).Once()

	got, err := suite.service.CreateTransfer(ctx, dto.CreateTransferRequest{
		DestinationBarID: "bar-b",
		ItemID:           "store-gin",
		Quantity:         decimal.NewFromInt(6),
	}, cashier("cashier-b"))

	suite.Require().NoError(err)
	suite.Equal("Gin", got.ItemName)
}
