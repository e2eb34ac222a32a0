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

type InventoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInventoryRepository
	tx       *passthroughTx
	service  portssvc.InventorySvcFacade
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInventoryRepository)
	suite.tx = &passthroughTx{}
	suite.service = services.NewInventoryService(suite.mockRepo, suite.tx)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}

func (suite *InventoryServiceTestSuite) TestApplyMovement_OutFloorsAtZero() {
	ctx := context.Background()
	item := &domain.InventoryItem{ItemID: "item-1", Name: "Tonic", CurrentStock: decimal.NewFromInt(3), MinStockLevel: decimal.NewFromInt(2)}

	suite.mockRepo.On("FindInventoryItemForUpdate", ctx, "item-1").Return(item, nil).Once()
	suite.mockRepo.On("UpdateStockLevel", ctx, "item-1", mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() }), mock.Anything, "cashier-1").Return(nil).Once()
	suite.mockRepo.On("SaveStockMovement", ctx, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.MovementType == domain.MovementOut &&
			m.PreviousStock.Equal(decimal.NewFromInt(3)) &&
			m.Quantity.Equal(decimal.NewFromInt(5)) &&
			m.NewStock.IsZero()
	})).Return(nil).Once()

	movement, updated, err := suite.service.ApplyMovement(ctx, "item-1", dto.StockMovementRequest{MovementType: "out", Quantity: decimal.NewFromInt(5)}, "cashier-1")

	suite.Require().NoError(err)
	suite.True(movement.NewStock.IsZero())
	suite.True(updated.IsOutOfStock())
	suite.Equal(1, suite.tx.calls)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestApplyMovement_Adjustment() {
	ctx := context.Background()
	item := &domain.InventoryItem{ItemID: "item-1", CurrentStock: decimal.NewFromInt(40)}

	suite.mockRepo.On("FindInventoryItemForUpdate", ctx, "item-1").Return(item, nil).Once()
	suite.mockRepo.On("UpdateStockLevel", ctx, "item-1", mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(12)) }), mock.Anything, "officer").Return(nil).Once()
	suite.mockRepo.On("SaveStockMovement", ctx, mock.AnythingOfType("domain.StockMovement")).Return(nil).Once()

	_, updated, err := suite.service.ApplyMovement(ctx, "item-1", dto.StockMovementRequest{MovementType: "adjustment", Quantity: decimal.NewFromInt(12)}, "officer")

	suite.Require().NoError(err)
	suite.True(updated.CurrentStock.Equal(decimal.NewFromInt(12)))
}

func (suite *InventoryServiceTestSuite) TestApplyMovement_RejectsNonPositiveIn() {
	ctx := context.Background()
	suite.mockRepo.On("FindInventoryItemForUpdate", ctx, "item-1").Return(&domain.InventoryItem{ItemID: "item-1"}, nil).Once()

	_, _, err := suite.service.ApplyMovement(ctx, "item-1", dto.StockMovementRequest{MovementType: "in", Quantity: decimal.Zero}, "officer")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateStockLevel", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestListInventory_LowOnly() {
	ctx := context.Background()
	barID := "bar-a"
	suite.mockRepo.On("ListInventoryItems", ctx, &barID).Return([]domain.InventoryItem{
		{ItemID: "ok", CurrentStock: decimal.NewFromInt(10), MinStockLevel: decimal.NewFromInt(2)},
		{ItemID: "low", CurrentStock: decimal.NewFromInt(2), MinStockLevel: decimal.NewFromInt(2)},
		{ItemID: "out", CurrentStock: decimal.Zero, MinStockLevel: decimal.NewFromInt(2)},
	}, nil).Once()

	items, err := suite.service.ListInventory(ctx, &barID, true)

	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal("low", items[0].ItemID)
	suite.Equal("out", items[1].ItemID)
}
