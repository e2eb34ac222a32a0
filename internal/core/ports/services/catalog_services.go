package services

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/dto"
)

type CatalogSvcFacade interface {
	GetCatalog(ctx context.Context) ([]domain.MenuCategory, []domain.MenuItem, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.MenuCategory, error)
	CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest) (*domain.MenuItem, error)
}

// MigrationSvc imports the menu catalog from the legacy POS.
type MigrationSvc interface {
	// MigrateLegacyCatalog reads the configured legacy database and skips rows whose name already exists.
	MigrateLegacyCatalog(ctx context.Context) (*domain.MigrationResult, error)
}
