package domain_test

import (
	"testing"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func rolePtr(r domain.Role) *domain.Role {
	return &r
}

func testMenu() domain.Menu {
	return domain.Menu{Groups: []domain.NavGroup{
		{Title: "Main", Entries: []domain.NavEntry{{Label: "Dashboard", Target: "/"}}},
		{Title: "Sales", Entries: []domain.NavEntry{
			{Label: "POS", Target: "/pos", Roles: []domain.Role{domain.RoleCashier, domain.RoleWaitstaff}},
			{Label: "Kitchen Display", Target: "/kitchen", Roles: []domain.Role{domain.RoleKitchenStaff}},
		}},
		{Title: "Administration", Entries: []domain.NavEntry{
			{Label: "Staff", Target: "/staff", Roles: domain.StaffManagerRoles},
		}},
	}}
}

func TestFilterMenu(t *testing.T) {
	tests := []struct {
		name   string
		role   *domain.Role
		labels []string
		groups []string
	}{
		{name: "absent role sees unrestricted only", role: nil, labels: []string{"Dashboard"}, groups: []string{"Main"}},
		{name: "waitstaff", role: rolePtr(domain.RoleWaitstaff), labels: []string{"Dashboard", "POS"}, groups: []string{"Main", "Sales"}},
		{name: "kitchen", role: rolePtr(domain.RoleKitchenStaff), labels: []string{"Dashboard", "Kitchen Display"}, groups: []string{"Main", "Sales"}},
		{name: "manager", role: rolePtr(domain.RoleManager), labels: []string{"Dashboard", "Staff"}, groups: []string{"Main", "Administration"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.FilterMenu(testMenu(), tt.role)
			assert.Equal(t, tt.labels, got.Labels())
			var titles []string
			for _, g := range got.Groups {
				titles = append(titles, g.Title)
			}
			assert.Equal(t, tt.groups, titles)
		})
	}
}

func TestFilterMenu_DoesNotMutateInput(t *testing.T) {
	menu := testMenu()
	_ = domain.FilterMenu(menu, nil)
	assert.Len(t, menu.Groups, 3)
	assert.Len(t, menu.Groups[1].Entries, 2)
}

func TestHasRole(t *testing.T) {
	assert.False(t, domain.HasRole(nil, domain.AllRoles...))
	assert.True(t, domain.HasRole(rolePtr(domain.RoleManager), domain.StaffManagerRoles...))
	assert.False(t, domain.HasRole(rolePtr(domain.RoleCashier), domain.StaffManagerRoles...))
	_, err := domain.ParseRole("owner")
	assert.Error(t, err)
}
