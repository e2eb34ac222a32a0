package pgsql

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCatalogRepository struct {
	BaseRepository
}

func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

const (
	categorySelect = `SELECT category_id, name, legacy_id, created_at FROM menu_categories `
	menuItemSelect = `SELECT menu_item_id, category_id, name, price, is_available, legacy_id, created_at FROM menu_items `
)

func (r *PgxCatalogRepository) ListCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	rows, err := r.db(ctx).Query(ctx, categorySelect+`ORDER BY name`)
	if err != nil {
		return nil, mapError(err, "list categories")
	}
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.MenuCategory])
	if err != nil {
		return nil, mapError(err, "collect category rows")
	}
	return categories, nil
}

// ListMenuItems lists all items, or the items of one category when categoryID is set.
func (r *PgxCatalogRepository) ListMenuItems(ctx context.Context, categoryID *string) ([]domain.MenuItem, error) {
	rows, err := r.db(ctx).Query(ctx, menuItemSelect+`WHERE $1::uuid IS NULL OR category_id = $1 ORDER BY name`, categoryID)
	if err != nil {
		return nil, mapError(err, "list menu items")
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.MenuItem])
	if err != nil {
		return nil, mapError(err, "collect menu item rows")
	}
	return items, nil
}

func (r *PgxCatalogRepository) FindCategoryByName(ctx context.Context, name string) (*domain.MenuCategory, error) {
	rows, err := r.db(ctx).Query(ctx, categorySelect+`WHERE lower(name) = lower($1)`, name)
	if err != nil {
		return nil, mapError(err, "query category")
	}
	category, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.MenuCategory])
	if err != nil {
		return nil, mapError(err, "find category "+name)
	}
	return &category, nil
}

func (r *PgxCatalogRepository) FindMenuItemByName(ctx context.Context, name string) (*domain.MenuItem, error) {
	rows, err := r.db(ctx).Query(ctx, menuItemSelect+`WHERE lower(name) = lower($1)`, name)
	if err != nil {
		return nil, mapError(err, "query menu item")
	}
	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.MenuItem])
	if err != nil {
		return nil, mapError(err, "find menu item "+name)
	}
	return &item, nil
}

func (r *PgxCatalogRepository) SaveCategory(ctx context.Context, category domain.MenuCategory) error {
	query := `
		INSERT INTO menu_categories (category_id, name, legacy_id, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.db(ctx).Exec(ctx, query, category.CategoryID, category.Name, category.LegacyID, category.CreatedAt)
	return mapError(err, "save category "+category.Name)
}

func (r *PgxCatalogRepository) SaveMenuItem(ctx context.Context, item domain.MenuItem) error {
	query := `
		INSERT INTO menu_items (menu_item_id, category_id, name, price, is_available, legacy_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		item.MenuItemID,
		item.CategoryID,
		item.Name,
		item.Price,
		item.IsAvailable,
		item.LegacyID,
		item.CreatedAt,
	)
	return mapError(err, "save menu item "+item.Name)
}
