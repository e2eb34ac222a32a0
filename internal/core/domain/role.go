package domain

import (
	"fmt"
	"slices"
)

// Role is the closed set of roles an identity can hold.
type Role string

const (
	RoleSuperAdmin       Role = "super_admin"
	RoleManager          Role = "manager"
	RoleCashier          Role = "cashier"
	RoleBarStaff         Role = "bar_staff"
	RoleKitchenStaff     Role = "kitchen_staff"
	RoleInventoryOfficer Role = "inventory_officer"
	RoleAccountant       Role = "accountant"
	RoleStoreAdmin       Role = "store_admin"
	RoleStoreUser        Role = "store_user"
	RoleWaitstaff        Role = "waitstaff"
)

// AllRoles lists every valid role in display order.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleManager,
	RoleCashier,
	RoleBarStaff,
	RoleKitchenStaff,
	RoleInventoryOfficer,
	RoleAccountant,
	RoleStoreAdmin,
	RoleStoreUser,
	RoleWaitstaff,
}

// StaffManagerRoles may create, edit and deactivate staff identities.
var StaffManagerRoles = []Role{RoleSuperAdmin, RoleManager}

// InventoryManagerRoles may create stock lines and record stock movements.
var InventoryManagerRoles = []Role{RoleSuperAdmin, RoleManager, RoleInventoryOfficer, RoleStoreAdmin, RoleBarStaff}

// ReportViewerRoles may read sales reports.
var ReportViewerRoles = []Role{RoleSuperAdmin, RoleManager, RoleAccountant}

// OrderTakerRoles may submit POS orders.
var OrderTakerRoles = []Role{RoleSuperAdmin, RoleManager, RoleCashier, RoleWaitstaff, RoleBarStaff}

func (r Role) IsValid() bool {
	return slices.Contains(AllRoles, r)
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts s into a Role, rejecting anything outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// HasRole reports whether role is present and one of allowed.
// An absent role never matches, so callers deny by default.
func HasRole(role *Role, allowed ...Role) bool {
	if role == nil {
		return false
	}
	return slices.Contains(allowed, *role)
}
