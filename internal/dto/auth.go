package dto

import (
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// SignInRequest is the administrator email/password sign-in body.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUpRequest creates a new administrator identity.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required,max=120"`
}

// GoogleSignInRequest carries a Google ID token obtained by the frontend.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AdminIdentityResponse is the administrator identity as returned to clients.
type AdminIdentityResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"fullName"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Role      *string `json:"role,omitempty"`
}

// AuthSessionResponse is returned by sign-in, sign-up and refresh.
type AuthSessionResponse struct {
	AccessToken      string                `json:"accessToken"`
	ExpiresAt        time.Time             `json:"expiresAt"`
	RefreshToken     string                `json:"refreshToken"`
	RefreshExpiresAt time.Time             `json:"refreshExpiresAt"`
	User             AdminIdentityResponse `json:"user"`
}

// StaffLoginRequest is the raw staff credential pair; the server alone decides validity.
type StaffLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StaffLoginResponse mirrors the verification procedure's single-row result plus a session token.
type StaffLoginResponse struct {
	StaffID    string    `json:"staff_id"`
	StaffName  string    `json:"staff_name"`
	StaffEmail *string   `json:"staff_email,omitempty"`
	StaffRole  string    `json:"staff_role"`
	Username   string    `json:"username"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ToAdminIdentityResponse converts a domain.AdminIdentity to its response DTO.
func ToAdminIdentityResponse(a *domain.AdminIdentity) AdminIdentityResponse {
	resp := AdminIdentityResponse{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.FullName,
		AvatarURL: a.AvatarURL,
	}
	if a.Role != nil {
		role := a.Role.String()
		resp.Role = &role
	}
	return resp
}

// ToAuthSessionResponse converts a domain.AuthSession to its response DTO.
func ToAuthSessionResponse(s *domain.AuthSession) AuthSessionResponse {
	return AuthSessionResponse{
		AccessToken:      s.AccessToken,
		ExpiresAt:        s.AccessExpiresAt,
		RefreshToken:     s.RefreshToken,
		RefreshExpiresAt: s.RefreshExpiresAt,
		User:             ToAdminIdentityResponse(&s.Identity),
	}
}

// ToAdminIdentity converts the response back into a domain identity on the client.
func (r AdminIdentityResponse) ToAdminIdentity() domain.AdminIdentity {
	identity := domain.AdminIdentity{
		ID:        r.ID,
		Email:     r.Email,
		FullName:  r.FullName,
		AvatarURL: r.AvatarURL,
	}
	if r.Role != nil {
		if role, err := domain.ParseRole(*r.Role); err == nil {
			identity.Role = &role
		}
	}
	return identity
}
