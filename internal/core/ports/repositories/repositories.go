package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	Tx            TransactionManager
	AdminRepo     AdminRepositoryFacade
	StaffRepo     StaffRepositoryFacade
	BarRepo       BarRepositoryFacade
	OrderRepo     OrderRepositoryFacade
	InventoryRepo InventoryRepositoryFacade
	TransferRepo  TransferRepositoryFacade
	CatalogRepo   CatalogRepositoryFacade
	ReportingRepo ReportingRepository
}
