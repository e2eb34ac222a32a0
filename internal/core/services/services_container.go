package services

import (
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	menu domain.Menu,
	openLegacy portsrepo.LegacySourceOpener,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		AdminAuth:  NewAdminAuthService(cfg, repos.AdminRepo, repos.Tx, NewGoogleIDTokenValidator(cfg.GoogleClientID)),
		StaffAuth:  NewStaffAuthService(cfg, repos.StaffRepo),
		Staff:      NewStaffService(repos.StaffRepo),
		Accounts:   NewAccountAdminService(repos.AdminRepo),
		Bar:        NewBarService(repos.BarRepo),
		Assignment: NewAssignmentService(repos.BarRepo, repos.Tx),
		Order:      NewOrderService(repos.OrderRepo),
		Inventory:  NewInventoryService(repos.InventoryRepo, repos.Tx),
		Transfer:   NewTransferService(repos.TransferRepo, repos.InventoryRepo, repos.BarRepo, repos.Tx),
		Reporting:  NewReportingService(repos.ReportingRepo),
		Navigation: NewNavigationService(menu),
		Catalog:    NewCatalogService(repos.CatalogRepo),
		Migration:  NewMigrationService(repos.CatalogRepo, openLegacy, cfg.LegacyMySQLDSN),
	}
}
