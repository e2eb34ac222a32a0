package services

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/dto"
)

// AccountAdminSvc runs privileged administrator account actions.
type AccountAdminSvc interface {
	// ExecuteAccountAction creates, updates or deletes an administrator account.
	// Create reports later failures as warnings without rolling the account back.
	ExecuteAccountAction(ctx context.Context, req dto.AccountActionRequest, actorID string) (*dto.AccountActionResponse, error)
}
