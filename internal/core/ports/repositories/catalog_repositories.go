package repositories

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// CatalogReader defines read operations for the menu catalog.
type CatalogReader interface {
	ListCategories(ctx context.Context) ([]domain.MenuCategory, error)
	ListMenuItems(ctx context.Context, categoryID *string) ([]domain.MenuItem, error)
	// FindCategoryByName and FindMenuItemByName match case-insensitively.
	FindCategoryByName(ctx context.Context, name string) (*domain.MenuCategory, error)
	FindMenuItemByName(ctx context.Context, name string) (*domain.MenuItem, error)
}

// CatalogWriter defines write operations for the menu catalog.
type CatalogWriter interface {
	SaveCategory(ctx context.Context, category domain.MenuCategory) error
	SaveMenuItem(ctx context.Context, item domain.MenuItem) error
}

// CatalogRepositoryFacade combines all catalog repository interfaces.
type CatalogRepositoryFacade interface {
	CatalogReader
	CatalogWriter
}

// LegacySource reads the legacy MySQL POS during a one-shot migration.
type LegacySource interface {
	ListLegacyCategories(ctx context.Context) ([]domain.LegacyCategory, error)
	ListLegacyItems(ctx context.Context) ([]domain.LegacyItem, error)
	// Target names the connected host and database, without credentials.
	Target() string
	Close() error
}

// LegacySourceOpener connects to the legacy POS identified by dsn.
type LegacySourceOpener func(ctx context.Context, dsn string) (LegacySource, error)
