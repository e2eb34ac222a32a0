package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/SscSPs/cherry_dining/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMigrateLegacyCatalog_SkipsExistingNames(t *testing.T) {
	ctx := context.Background()
	catalog := new(MockCatalogRepository)
	source := new(MockLegacySource)

	drinks := "10"
	food := "20"
	source.On("ListLegacyCategories", ctx).Return([]domain.LegacyCategory{
		{LegacyID: drinks, Name: "Drinks"},
		{LegacyID: food, Name: "Food"},
	}, nil)
	source.On("ListLegacyItems", ctx).Return([]domain.LegacyItem{
		{LegacyID: "100", LegacyCategoryID: &drinks, Name: "Mojito", Price: decimal.RequireFromString("9.00")},
		{LegacyID: "101", LegacyCategoryID: &food, Name: "Nachos", Price: decimal.RequireFromString("7.50")},
		{LegacyID: "102", LegacyCategoryID: &food, Name: "Wings", Price: decimal.RequireFromString("8.00")},
	}, nil)
	source.On("Target").Return("legacy-pos:3306/pos").Once()
	source.On("Close").Return(nil).Once()

	catalog.On("FindCategoryByName", ctx, "Drinks").Return(&domain.MenuCategory{CategoryID: "cat-drinks", Name: "Drinks"}, nil)
	catalog.On("FindCategoryByName", ctx, "Food").Return(nil, errNotFound)
	var foodID string
	catalog.On("SaveCategory", ctx, mock.AnythingOfType("domain.MenuCategory")).Run(func(args mock.Arguments) {
		foodID = args.Get(1).(domain.MenuCategory).CategoryID
	}).Return(nil).Once()

	catalog.On("FindMenuItemByName", ctx, "Mojito").Return(nil, errNotFound)
	catalog.On("FindMenuItemByName", ctx, "Nachos").Return(&domain.MenuItem{Name: "Nachos"}, nil)
	catalog.On("FindMenuItemByName", ctx, "Wings").Return(nil, errNotFound)
	catalog.On("SaveMenuItem", ctx, mock.MatchedBy(func(i domain.MenuItem) bool { return i.Name == "Mojito" && *i.CategoryID == "cat-drinks" })).Return(nil).Once()
	catalog.On("SaveMenuItem", ctx, mock.MatchedBy(func(i domain.MenuItem) bool { return i.Name == "Wings" })).Return(errors.New("check constraint")).Once()

	opener := func(_ context.Context, dsn string) (portsrepo.LegacySource, error) {
		assert.Equal(t, "legacy:dsn", dsn)
		return source, nil
	}
	svc := services.NewMigrationService(catalog, opener, "legacy:dsn")

	result, err := svc.MigrateLegacyCatalog(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, result.CategoriesCreated)
	assert.Equal(t, 1, result.ItemsCreated)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Wings")
	assert.NotEmpty(t, foodID)
	source.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func TestMigrateLegacyCatalog_NoDSN(t *testing.T) {
	svc := services.NewMigrationService(new(MockCatalogRepository), nil, "")
	_, err := svc.MigrateLegacyCatalog(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
