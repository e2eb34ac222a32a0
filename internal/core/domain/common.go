package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // identity ID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // identity ID reference
}

// NewAuditFields stamps creation and update fields with the same actor and time.
func NewAuditFields(now time.Time, actorID string) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
}

// PageCursor is a keyset position: the created_at and id of the last row of a page.
type PageCursor struct {
	CreatedAt time.Time
	ID        string
}
