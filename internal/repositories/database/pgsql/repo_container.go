package pgsql

import (
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Tx:            &BaseRepository{Pool: dbPool},
		AdminRepo:     newPgxAdminRepository(dbPool),
		StaffRepo:     newPgxStaffRepository(dbPool),
		BarRepo:       newPgxBarRepository(dbPool),
		OrderRepo:     newPgxOrderRepository(dbPool),
		InventoryRepo: newPgxInventoryRepository(dbPool),
		TransferRepo:  newPgxTransferRepository(dbPool),
		CatalogRepo:   newPgxCatalogRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
