package session

import (
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// EffectiveIdentity picks the identity the terminal acts as at now. A staff session that
// is valid at now always wins over the administrator. Nil means nobody is signed in.
func EffectiveIdentity(staff *domain.StaffSession, admin AdminSnapshot, now time.Time) *domain.Identity {
	if staff.Valid(now) {
		role := staff.Staff.Role
		return &domain.Identity{
			Kind:  domain.KindStaff,
			ID:    staff.Staff.ID,
			Name:  staff.Staff.FullName,
			Email: deref(staff.Staff.Email),
			Role:  &role,
		}
	}
	if admin.State == StatePresent && admin.Identity != nil {
		id := *admin.Identity
		return &id
	}
	return nil
}

// EffectiveRole is the role of EffectiveIdentity, or nil when there is none.
// A nil role fails every domain.HasRole check.
func EffectiveRole(staff *domain.StaffSession, admin AdminSnapshot, now time.Time) *domain.Role {
	identity := EffectiveIdentity(staff, admin, now)
	if identity == nil {
		return nil
	}
	return identity.Role
}

// EffectiveToken is the bearer token of EffectiveIdentity.
func EffectiveToken(staff *domain.StaffSession, admin AdminSnapshot, now time.Time) string {
	if staff.Valid(now) {
		return staff.Token
	}
	if admin.State == StatePresent {
		return admin.AccessToken
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
