package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// passthroughTx runs fn directly and counts how often a transaction was requested.
type passthroughTx struct {
	calls int
}

func (t *passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

var _ portsrepo.TransactionManager = (*passthroughTx)(nil)

// --- MockAdminRepository ---
type MockAdminRepository struct {
	mock.Mock
}

var _ portsrepo.AdminRepositoryFacade = (*MockAdminRepository)(nil)

func (m *MockAdminRepository) FindAdminByID(ctx context.Context, userID string) (*domain.AdminIdentity, error) {
	args := m.Called(ctx, userID)
	var identity *domain.AdminIdentity
	if args.Get(0) != nil {
		identity = args.Get(0).(*domain.AdminIdentity)
	}
	return identity, args.Error(1)
}

func (m *MockAdminRepository) FindCredentialsByEmail(ctx context.Context, email string) (*domain.AdminCredentials, error) {
	args := m.Called(ctx, email)
	var creds *domain.AdminCredentials
	if args.Get(0) != nil {
		creds = args.Get(0).(*domain.AdminCredentials)
	}
	return creds, args.Error(1)
}

func (m *MockAdminRepository) FindCredentialsByID(ctx context.Context, userID string) (*domain.AdminCredentials, error) {
	args := m.Called(ctx, userID)
	var creds *domain.AdminCredentials
	if args.Get(0) != nil {
		creds = args.Get(0).(*domain.AdminCredentials)
	}
	return creds, args.Error(1)
}

func (m *MockAdminRepository) SaveCredentials(ctx context.Context, creds domain.AdminCredentials) error {
	return m.Called(ctx, creds).Error(0)
}

func (m *MockAdminRepository) SaveProfile(ctx context.Context, profile domain.AdminProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockAdminRepository) UpsertRole(ctx context.Context, userID string, role domain.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *MockAdminRepository) DeleteAdmin(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAdminRepository) UpdateRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiresAt time.Time) error {
	return m.Called(ctx, userID, refreshTokenHash, expiresAt).Error(0)
}

func (m *MockAdminRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- MockStaffRepository ---
type MockStaffRepository struct {
	mock.Mock
}

var _ portsrepo.StaffRepositoryFacade = (*MockStaffRepository)(nil)

func (m *MockStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.StaffIdentity, error) {
	args := m.Called(ctx, staffID)
	var staff *domain.StaffIdentity
	if args.Get(0) != nil {
		staff = args.Get(0).(*domain.StaffIdentity)
	}
	return staff, args.Error(1)
}

func (m *MockStaffRepository) FindStaffByUsername(ctx context.Context, username string) (*domain.StaffIdentity, error) {
	args := m.Called(ctx, username)
	var staff *domain.StaffIdentity
	if args.Get(0) != nil {
		staff = args.Get(0).(*domain.StaffIdentity)
	}
	return staff, args.Error(1)
}

func (m *MockStaffRepository) FindStaffByEmail(ctx context.Context, email string) (*domain.StaffIdentity, error) {
	args := m.Called(ctx, email)
	var staff *domain.StaffIdentity
	if args.Get(0) != nil {
		staff = args.Get(0).(*domain.StaffIdentity)
	}
	return staff, args.Error(1)
}

func (m *MockStaffRepository) ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffIdentity, error) {
	args := m.Called(ctx, includeInactive)
	var staff []domain.StaffIdentity
	if args.Get(0) != nil {
		staff = args.Get(0).([]domain.StaffIdentity)
	}
	return staff, args.Error(1)
}

func (m *MockStaffRepository) SaveStaff(ctx context.Context, staff domain.StaffIdentity) error {
	return m.Called(ctx, staff).Error(0)
}

func (m *MockStaffRepository) UpdateStaff(ctx context.Context, staff domain.StaffIdentity) error {
	return m.Called(ctx, staff).Error(0)
}

func (m *MockStaffRepository) UpdateStaffPassword(ctx context.Context, staffID, passwordHash string, updatedAt time.Time, updatedBy string) error {
	return m.Called(ctx, staffID, passwordHash, updatedAt, updatedBy).Error(0)
}

// --- MockInventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) FindInventoryItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	var item *domain.InventoryItem
	if args.Get(0) != nil {
		item = args.Get(0).(*domain.InventoryItem)
	}
	return item, args.Error(1)
}

func (m *MockInventoryRepository) FindInventoryItemForUpdate(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	var item *domain.InventoryItem
	if args.Get(0) != nil {
		item = args.Get(0).(*domain.InventoryItem)
	}
	return item, args.Error(1)
}

func (m *MockInventoryRepository) FindInventoryItemByName(ctx context.Context, barID *string, name string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, barID, name)
	var item *domain.InventoryItem
	if args.Get(0) != nil {
		item = args.Get(0).(*domain.InventoryItem)
	}
	return item, args.Error(1)
}

func (m *MockInventoryRepository) ListInventoryItems(ctx context.Context, barID *string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, barID)
	var items []domain.InventoryItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.InventoryItem)
	}
	return items, args.Error(1)
}

func (m *MockInventoryRepository) ListStockMovements(ctx context.Context, itemID string, before *domain.PageCursor, limit int) ([]domain.StockMovement, error) {
	args := m.Called(ctx, itemID, before, limit)
	var movements []domain.StockMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.StockMovement)
	}
	return movements, args.Error(1)
}

func (m *MockInventoryRepository) SaveInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepository) UpdateStockLevel(ctx context.Context, itemID string, newStock decimal.Decimal, updatedAt time.Time, updatedBy string) error {
	return m.Called(ctx, itemID, newStock, updatedAt, updatedBy).Error(0)
}

func (m *MockInventoryRepository) SaveStockMovement(ctx context.Context, movement domain.StockMovement) error {
	return m.Called(ctx, movement).Error(0)
}

// --- MockOrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, expectedVersion *int, updatedAt time.Time, updatedBy string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, from, to, expectedVersion, updatedAt, updatedBy)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

// --- MockTransferRepository ---
type MockTransferRepository struct {
	mock.Mock
}

var _ portsrepo.TransferRepositoryFacade = (*MockTransferRepository)(nil)

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.BarTransfer, error) {
	args := m.Called(ctx, transferID)
	var transfer *domain.BarTransfer
	if args.Get(0) != nil {
		transfer = args.Get(0).(*domain.BarTransfer)
	}
	return transfer, args.Error(1)
}

func (m *MockTransferRepository) FindTransferForUpdate(ctx context.Context, transferID string) (*domain.BarTransfer, error) {
	args := m.Called(ctx, transferID)
	var transfer *domain.BarTransfer
	if args.Get(0) != nil {
		transfer = args.Get(0).(*domain.BarTransfer)
	}
	return transfer, args.Error(1)
}

func (m *MockTransferRepository) ListPendingTransfersForBar(ctx context.Context, barID string) ([]domain.BarTransfer, error) {
	args := m.Called(ctx, barID)
	var transfers []domain.BarTransfer
	if args.Get(0) != nil {
		transfers = args.Get(0).([]domain.BarTransfer)
	}
	return transfers, args.Error(1)
}

func (m *MockTransferRepository) ListTransfers(ctx context.Context, limit int) ([]domain.BarTransfer, error) {
	args := m.Called(ctx, limit)
	var transfers []domain.BarTransfer
	if args.Get(0) != nil {
		transfers = args.Get(0).([]domain.BarTransfer)
	}
	return transfers, args.Error(1)
}

func (m *MockTransferRepository) SaveTransfer(ctx context.Context, transfer domain.BarTransfer) error {
	return m.Called(ctx, transfer).Error(0)
}

func (m *MockTransferRepository) UpdateTransferStatus(ctx context.Context, transferID string, status domain.TransferStatus, respondedBy string, updatedAt time.Time) error {
	return m.Called(ctx, transferID, status, respondedBy, updatedAt).Error(0)
}

// --- MockCatalogRepository ---
type MockCatalogRepository struct {
	mock.Mock
}

var _ portsrepo.CatalogRepositoryFacade = (*MockCatalogRepository)(nil)

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	args := m.Called(ctx)
	var categories []domain.MenuCategory
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.MenuCategory)
	}
	return categories, args.Error(1)
}

func (m *MockCatalogRepository) ListMenuItems(ctx context.Context, categoryID *string) ([]domain.MenuItem, error) {
	args := m.Called(ctx, categoryID)
	var items []domain.MenuItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.MenuItem)
	}
	return items, args.Error(1)
}

func (m *MockCatalogRepository) FindCategoryByName(ctx context.Context, name string) (*domain.MenuCategory, error) {
	args := m.Called(ctx, name)
	var category *domain.MenuCategory
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.MenuCategory)
	}
	return category, args.Error(1)
}

func (m *MockCatalogRepository) FindMenuItemByName(ctx context.Context, name string) (*domain.MenuItem, error) {
	args := m.Called(ctx, name)
	var item *domain.MenuItem
	if args.Get(0) != nil {
		item = args.Get(0).(*domain.MenuItem)
	}
	return item, args.Error(1)
}

func (m *MockCatalogRepository) SaveCategory(ctx context.Context, category domain.MenuCategory) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCatalogRepository) SaveMenuItem(ctx context.Context, item domain.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

// --- MockLegacySource ---
type MockLegacySource struct {
	mock.Mock
}

var _ portsrepo.LegacySource = (*MockLegacySource)(nil)

func (m *MockLegacySource) ListLegacyCategories(ctx context.Context) ([]domain.LegacyCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LegacyCategory), args.Error(1)
}

func (m *MockLegacySource) ListLegacyItems(ctx context.Context) ([]domain.LegacyItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LegacyItem), args.Error(1)
}

func (m *MockLegacySource) Target() string {
	return m.Called().String(0)
}

func (m *MockLegacySource) Close() error {
	return m.Called().Error(0)
}

// memBarRepository keeps bars and assignments in memory so assignment tests can
// observe the resulting rows rather than just the calls.
type memBarRepository struct {
	bars        map[string]domain.Bar
	assignments []domain.CashierBarAssignment
}

var _ portsrepo.BarRepositoryFacade = (*memBarRepository)(nil)

func newMemBarRepository(bars ...domain.Bar) *memBarRepository {
	repo := &memBarRepository{bars: map[string]domain.Bar{}}
	for _, b := range bars {
		repo.bars[b.BarID] = b
	}
	return repo
}

func (r *memBarRepository) FindBarByID(_ context.Context, barID string) (*domain.Bar, error) {
	bar, ok := r.bars[barID]
	if !ok {
		return nil, errNotFound
	}
	return &bar, nil
}

func (r *memBarRepository) ListBars(_ context.Context, _ bool) ([]domain.Bar, error) {
	var out []domain.Bar
	for _, b := range r.bars {
		out = append(out, b)
	}
	return out, nil
}

func (r *memBarRepository) SaveBar(_ context.Context, bar domain.Bar) error {
	r.bars[bar.BarID] = bar
	return nil
}

func (r *memBarRepository) DeactivateAssignments(_ context.Context, identityID string) error {
	for i := range r.assignments {
		if r.assignments[i].IdentityID == identityID {
			r.assignments[i].IsActive = false
		}
	}
	return nil
}

func (r *memBarRepository) UpsertActiveAssignment(_ context.Context, a domain.CashierBarAssignment) error {
	for i := range r.assignments {
		if r.assignments[i].IdentityID == a.IdentityID && r.assignments[i].BarID == a.BarID {
			r.assignments[i].IsActive = true
			r.assignments[i].AssignedBy = a.AssignedBy
			r.assignments[i].AssignedAt = a.AssignedAt
			return nil
		}
	}
	r.assignments = append(r.assignments, a)
	return nil
}

func (r *memBarRepository) FindActiveAssignment(_ context.Context, identityID string) (*domain.CashierBarAssignment, error) {
	for _, a := range r.assignments {
		if a.IdentityID == identityID && a.IsActive {
			return &a, nil
		}
	}
	return nil, errNotFound
}

func (r *memBarRepository) ListActiveAssignments(_ context.Context) ([]domain.CashierBarAssignment, error) {
	var out []domain.CashierBarAssignment
	for _, a := range r.assignments {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memBarRepository) activeFor(identityID string) []domain.CashierBarAssignment {
	var out []domain.CashierBarAssignment
	for _, a := range r.assignments {
		if a.IdentityID == identityID && a.IsActive {
			out = append(out, a)
		}
	}
	return out
}
