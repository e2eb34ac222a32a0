package dto

import "github.com/SscSPs/cherry_dining/internal/core/domain"

// CreateBarRequest creates a bar location.
type CreateBarRequest struct {
	Name     string  `json:"name" binding:"required,max=80"`
	Location *string `json:"location" binding:"omitempty,max=120"`
}

// ListBarsResponse wraps the list of bars.
type ListBarsResponse struct {
	Bars []domain.Bar `json:"bars"`
}

// AssignBarRequest assigns an identity to a bar, replacing any active assignment.
type AssignBarRequest struct {
	IdentityID string `json:"identityId" binding:"required,uuid"`
	BarID      string `json:"barId" binding:"required,uuid"`
}

// ListAssignmentsResponse wraps active assignments.
type ListAssignmentsResponse struct {
	Assignments []domain.CashierBarAssignment `json:"assignments"`
}
