package dto

// Account management actions.
const (
	AccountActionCreate = "create"
	AccountActionUpdate = "update"
	AccountActionDelete = "delete"
)

// AccountActionRequest is the privileged account-management body. Which fields are
// required depends on Action.
type AccountActionRequest struct {
	Action    string  `json:"action" binding:"required,oneof=create update delete"`
	UserID    string  `json:"userId"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Password  string  `json:"password" binding:"omitempty,min=8"`
	FullName  *string `json:"fullName" binding:"omitempty,max=120"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
	Role      *string `json:"role" binding:"omitempty,cherry_role"`
}

// AccountActionResponse reports the account and any later writes that failed.
type AccountActionResponse struct {
	Success  bool                   `json:"success"`
	User     *AdminIdentityResponse `json:"user,omitempty"`
	Warnings []string               `json:"warnings,omitempty"`
}
