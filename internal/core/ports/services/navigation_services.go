package services

import "github.com/SscSPs/cherry_dining/internal/core/domain"

// NavigationSvc serves the navigation menu.
type NavigationSvc interface {
	// MenuFor returns the entries visible to role. A nil role sees unrestricted entries only.
	MenuFor(role *domain.Role) domain.Menu
}
