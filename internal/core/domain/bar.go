package domain

import "time"

// Bar is a physical drink-service location with its own inventory ledger.
// The central store is not a Bar; it is represented by a nil bar ID.
type Bar struct {
	BarID     string    `json:"barID" db:"bar_id"`
	Name      string    `json:"name" db:"name"`
	Location  *string   `json:"location,omitempty" db:"location"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	CreatedBy string    `json:"createdBy" db:"created_by"`
}

// CashierBarAssignment maps an identity to a bar. At most one row per identity is active.
type CashierBarAssignment struct {
	AssignmentID string    `json:"assignmentID"`
	IdentityID   string    `json:"identityID"`
	BarID        string    `json:"barID"`
	BarName      string    `json:"barName,omitempty"`
	IsActive     bool      `json:"isActive"`
	AssignedBy   string    `json:"assignedBy"`
	AssignedAt   time.Time `json:"assignedAt"`
}
