package domain

import "time"

// IdentityKind distinguishes the two independent authentication paths.
type IdentityKind string

const (
	KindAdmin IdentityKind = "admin"
	KindStaff IdentityKind = "staff"
)

// AdminIdentity is an account authenticated by email and password (or Google) and
// managed through the admin accounts endpoint.
type AdminIdentity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	Role      *Role     `json:"role,omitempty"` // nil until a role row exists
	CreatedAt time.Time `json:"createdAt"`
}

// AdminCredentials is the stored authentication state of an administrator.
type AdminCredentials struct {
	UserID                 string
	Email                  string
	PasswordHash           string
	RefreshTokenHash       string
	RefreshTokenExpiryTime *time.Time
	CreatedAt              time.Time
	LastUpdatedAt          time.Time
}

// AdminProfile holds the display attributes of an administrator.
type AdminProfile struct {
	UserID    string
	FullName  string
	AvatarURL *string
	UpdatedAt time.Time
}

// StaffIdentity is a locally managed floor account, distinct from AdminIdentity.
type StaffIdentity struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	FullName     string  `json:"fullName"`
	Email        *string `json:"email,omitempty"`
	Role         Role    `json:"role"`
	IsActive     bool    `json:"isActive"`
	PasswordHash string  `json:"-"`
	AuditFields
}

// Identity is the effective identity the rest of the app works with.
type Identity struct {
	Kind  IdentityKind `json:"kind"`
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email,omitempty"`
	Role  *Role        `json:"role,omitempty"`
}

// AuthSession is the token pair issued to an administrator.
type AuthSession struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	Identity         AdminIdentity
}

// StaffSession is a locally persisted staff login. It is valid until ExpiresAt.
type StaffSession struct {
	Staff     StaffIdentity `json:"staff"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

// Valid reports whether the session is present and unexpired at now.
func (s *StaffSession) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && !s.ExpiresAt.IsZero() && now.Before(s.ExpiresAt)
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   string
	Kind IdentityKind
	Role *Role
}
