package domain

import "github.com/shopspring/decimal"

// LegacyStaffRecord is a staff row exported from the legacy POS.
type LegacyStaffRecord struct {
	Username string  `json:"username"`
	FullName string  `json:"fullName"`
	Email    *string `json:"email,omitempty"`
	Role     string  `json:"role"`
}

// StaffImportResult reports the outcome for one imported record.
type StaffImportResult struct {
	Username          string  `json:"username"`
	Success           bool    `json:"success"`
	StaffID           string  `json:"staffID,omitempty"`
	Email             *string `json:"email,omitempty"`
	TemporaryPassword string  `json:"temporaryPassword,omitempty"`
	Error             string  `json:"error,omitempty"`
}

// LegacyCategory is a category row in the legacy MySQL POS.
type LegacyCategory struct {
	LegacyID string
	Name     string
}

// LegacyItem is an item row in the legacy MySQL POS.
type LegacyItem struct {
	LegacyID         string
	LegacyCategoryID *string
	Name             string
	Price            decimal.Decimal
}

// MigrationResult reports what a legacy migration run created.
type MigrationResult struct {
	CategoriesCreated int      `json:"categoriesCreated"`
	ItemsCreated      int      `json:"itemsCreated"`
	Skipped           int      `json:"skipped"`
	Errors            []string `json:"errors"`
}
