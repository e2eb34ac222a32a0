package dto

import (
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// CreateStaffRequest creates a staff identity.
type CreateStaffRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	FullName string  `json:"fullName" binding:"required,max=120"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     string  `json:"role" binding:"required,cherry_role"`
	Password string  `json:"password" binding:"required,min=6"`
}

// UpdateStaffRequest uses pointers to differentiate omitted fields from zero values.
type UpdateStaffRequest struct {
	FullName *string `json:"fullName" binding:"omitempty,max=120"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     *string `json:"role" binding:"omitempty,cherry_role"`
	IsActive *bool   `json:"isActive"`
}

// ResetPasswordRequest is the password reset procedure body. The password is never echoed back.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ListStaffParams defines query parameters for listing staff.
type ListStaffParams struct {
	IncludeInactive bool `form:"include_inactive,default=false"`
}

// StaffResponse is the staff identity as returned to clients.
type StaffResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     *string   `json:"email,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListStaffResponse wraps the list of staff.
type ListStaffResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// ImportStaffRequest carries legacy staff records for bulk import.
type ImportStaffRequest struct {
	Records []domain.LegacyStaffRecord `json:"records" binding:"required,min=1,max=500"`
}

// ImportStaffResponse reports the per-record outcome of a bulk import.
type ImportStaffResponse struct {
	Succeeded int                        `json:"succeeded"`
	Failed    int                        `json:"failed"`
	Results   []domain.StaffImportResult `json:"results"`
}

// ToStaffResponse converts a domain.StaffIdentity to StaffResponse DTO.
func ToStaffResponse(s *domain.StaffIdentity) StaffResponse {
	return StaffResponse{
		ID:        s.ID,
		Username:  s.Username,
		FullName:  s.FullName,
		Email:     s.Email,
		Role:      s.Role.String(),
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

// ToListStaffResponse converts a slice of domain.StaffIdentity to ListStaffResponse.
func ToListStaffResponse(staff []domain.StaffIdentity) ListStaffResponse {
	resp := ListStaffResponse{Staff: make([]StaffResponse, len(staff))}
	for i := range staff {
		resp.Staff[i] = ToStaffResponse(&staff[i])
	}
	return resp
}

// ToImportStaffResponse counts successes and failures.
func ToImportStaffResponse(results []domain.StaffImportResult) ImportStaffResponse {
	resp := ImportStaffResponse{Results: results}
	for _, r := range results {
		if r.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp
}
