package services

// ServiceContainer holds instances of all the application services.
// It is the main entry point for accessing service functionality, particularly in the handlers.
type ServiceContainer struct {
	AdminAuth  AdminAuthSvcFacade
	StaffAuth  StaffAuthSvc
	Staff      StaffSvcFacade
	Accounts   AccountAdminSvc
	Bar        BarSvcFacade
	Assignment AssignmentSvcFacade
	Order      OrderSvcFacade
	Inventory  InventorySvcFacade
	Transfer   TransferSvcFacade
	Reporting  ReportingSvc
	Navigation NavigationSvc
	Catalog    CatalogSvcFacade
	Migration  MigrationSvc
}
