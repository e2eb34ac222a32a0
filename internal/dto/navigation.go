package dto

import "github.com/SscSPs/cherry_dining/internal/core/domain"

// NavigationResponse is the navigation menu filtered for the caller.
type NavigationResponse struct {
	Role *string     `json:"role,omitempty"`
	Menu domain.Menu `json:"menu"`
}
