package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/google/uuid"
)

type catalogService struct {
	BaseService
	catalogRepo portsrepo.CatalogRepositoryFacade
}

func NewCatalogService(catalogRepo portsrepo.CatalogRepositoryFacade) portssvc.CatalogSvcFacade {
	return &catalogService{catalogRepo: catalogRepo}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) GetCatalog(ctx context.Context) ([]domain.MenuCategory, []domain.MenuItem, error) {
	categories, err := s.catalogRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list menu categories")
		return nil, nil, err
	}
	items, err := s.catalogRepo.ListMenuItems(ctx, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list menu items")
		return nil, nil, err
	}
	if categories == nil {
		categories = []domain.MenuCategory{}
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	return categories, items, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.MenuCategory, error) {
	category := domain.MenuCategory{
		CategoryID: uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		CreatedAt:  s.now(),
	}
	if err := s.catalogRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to create menu category", slog.String("name", category.Name))
		return nil, err
	}
	return &category, nil
}

func (s *catalogService) CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest) (*domain.MenuItem, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.NewValidationFailedError("price cannot be negative")
	}
	item := domain.MenuItem{
		MenuItemID:  uuid.NewString(),
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		IsAvailable: true,
		CreatedAt:   s.now(),
	}
	if err := s.catalogRepo.SaveMenuItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to create menu item", slog.String("name", item.Name))
		return nil, err
	}
	return &item, nil
}

// migrationService implements MigrationSvc.
type migrationService struct {
	BaseService
	catalogRepo portsrepo.CatalogRepositoryFacade
	openLegacy  portsrepo.LegacySourceOpener
	dsn         string
}

// NewMigrationService creates the legacy catalog migration service. dsn is the only legacy
// database it will connect to.
func NewMigrationService(catalogRepo portsrepo.CatalogRepositoryFacade, openLegacy portsrepo.LegacySourceOpener, dsn string) portssvc.MigrationSvc {
	return &migrationService{catalogRepo: catalogRepo, openLegacy: openLegacy, dsn: dsn}
}

var _ portssvc.MigrationSvc = (*migrationService)(nil)

// MigrateLegacyCatalog copies categories, then items, mapping legacy category ids to new ones.
// It is not transactional; re-running is safe because existing names are skipped.
func (s *migrationService) MigrateLegacyCatalog(ctx context.Context) (*domain.MigrationResult, error) {
	if s.dsn == "" {
		return nil, apperrors.NewValidationFailedError("no legacy database configured")
	}

	source, err := s.openLegacy(ctx, s.dsn)
	if err != nil {
		s.LogError(ctx, err, "Failed to connect to legacy database")
		return nil, apperrors.NewAppError(http.StatusBadGateway, "Could not connect to the legacy database", err)
	}
	defer source.Close()
	s.LogInfo(ctx, "Connected to legacy database", slog.String("target", source.Target()))

	categories, err := source.ListLegacyCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read legacy categories")
		return nil, apperrors.NewAppError(http.StatusBadGateway, "Could not read legacy categories", err)
	}
	items, err := source.ListLegacyItems(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read legacy items")
		return nil, apperrors.NewAppError(http.StatusBadGateway, "Could not read legacy items", err)
	}

	result := &domain.MigrationResult{Errors: []string{}}
	categoryIDs := make(map[string]string, len(categories))

	for _, legacy := range categories {
		name := strings.TrimSpace(legacy.Name)
		existing, err := s.catalogRepo.FindCategoryByName(ctx, name)
		if err == nil {
			categoryIDs[legacy.LegacyID] = existing.CategoryID
			result.Skipped++
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("category %q: %v", name, err))
			continue
		}

		legacyID := legacy.LegacyID
		category := domain.MenuCategory{CategoryID: uuid.NewString(), Name: name, LegacyID: &legacyID, CreatedAt: s.now()}
		if err := s.catalogRepo.SaveCategory(ctx, category); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("category %q: %v", name, err))
			continue
		}
		categoryIDs[legacy.LegacyID] = category.CategoryID
		result.CategoriesCreated++
	}

	for _, legacy := range items {
		name := strings.TrimSpace(legacy.Name)
		if _, err := s.catalogRepo.FindMenuItemByName(ctx, name); err == nil {
			result.Skipped++
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("item %q: %v", name, err))
			continue
		}

		var categoryID *string
		if legacy.LegacyCategoryID != nil {
			id, ok := categoryIDs[*legacy.LegacyCategoryID]
			if !ok {
				result.Errors = append(result.Errors, fmt.Sprintf("item %q: unknown legacy category %s", name, *legacy.LegacyCategoryID))
				continue
			}
			categoryID = &id
		}

		legacyID := legacy.LegacyID
		item := domain.MenuItem{
			MenuItemID:  uuid.NewString(),
			CategoryID:  categoryID,
			Name:        name,
			Price:       legacy.Price,
			IsAvailable: true,
			LegacyID:    &legacyID,
			CreatedAt:   s.now(),
		}
		if err := s.catalogRepo.SaveMenuItem(ctx, item); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("item %q: %v", name, err))
			continue
		}
		result.ItemsCreated++
	}

	s.LogInfo(ctx, "Legacy catalog migration finished",
		slog.Int("categories_created", result.CategoriesCreated),
		slog.Int("items_created", result.ItemsCreated),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", len(result.Errors)))
	return result, nil
}
