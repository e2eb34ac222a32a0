package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/google/uuid"
)

type barService struct {
	BaseService
	barRepo portsrepo.BarRepositoryFacade
}

func NewBarService(barRepo portsrepo.BarRepositoryFacade) portssvc.BarSvcFacade {
	return &barService{barRepo: barRepo}
}

var _ portssvc.BarSvcFacade = (*barService)(nil)

func (s *barService) ListBars(ctx context.Context, includeInactive bool) ([]domain.Bar, error) {
	bars, err := s.barRepo.ListBars(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bars")
		return nil, err
	}
	if bars == nil {
		return []domain.Bar{}, nil
	}
	return bars, nil
}

func (s *barService) CreateBar(ctx context.Context, req dto.CreateBarRequest, actorID string) (*domain.Bar, error) {
	bar := domain.Bar{
		BarID:     uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Location:  req.Location,
		IsActive:  true,
		CreatedAt: s.now(),
		CreatedBy: actorID,
	}
	if err := s.barRepo.SaveBar(ctx, bar); err != nil {
		s.LogError(ctx, err, "Failed to create bar", slog.String("name", bar.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Bar created", slog.String("bar_id", bar.BarID))
	return &bar, nil
}

// assignmentService implements AssignmentSvcFacade.
type assignmentService struct {
	BaseService
	barRepo portsrepo.BarRepositoryFacade
	tx      portsrepo.TransactionManager
}

// NewAssignmentService creates the cashier-bar assignment service.
func NewAssignmentService(barRepo portsrepo.BarRepositoryFacade, tx portsrepo.TransactionManager) portssvc.AssignmentSvcFacade {
	return &assignmentService{barRepo: barRepo, tx: tx}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

// Assign deactivates the identity's current assignment and activates (identity, bar).
// Both steps share one transaction so no reader sees zero or two active rows.
func (s *assignmentService) Assign(ctx context.Context, identityID, barID, assignedBy string) (*domain.CashierBarAssignment, error) {
	bar, err := s.barRepo.FindBarByID(ctx, barID)
	if err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to find bar for assignment", slog.String("bar_id", barID))
		return nil, err
	}

	assignment := domain.CashierBarAssignment{
		AssignmentID: uuid.NewString(),
		IdentityID:   identityID,
		BarID:        bar.BarID,
		BarName:      bar.Name,
		IsActive:     true,
		AssignedBy:   assignedBy,
		AssignedAt:   s.now(),
	}

	err = runInTx(ctx, s.tx, func(ctx context.Context) error {
		if err := s.barRepo.DeactivateAssignments(ctx, identityID); err != nil {
			return err
		}
		return s.barRepo.UpsertActiveAssignment(ctx, assignment)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to assign identity to bar",
			slog.String("identity_id", identityID),
			slog.String("bar_id", barID))
		return nil, err
	}

	s.LogInfo(ctx, "Identity assigned to bar",
		slog.String("identity_id", identityID),
		slog.String("bar_id", barID),
		slog.String("assigned_by", assignedBy))
	return &assignment, nil
}

func (s *assignmentService) GetActiveAssignment(ctx context.Context, identityID string) (*domain.CashierBarAssignment, error) {
	assignment, err := s.barRepo.FindActiveAssignment(ctx, identityID)
	if err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to find active assignment", slog.String("identity_id", identityID))
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) ListActiveAssignments(ctx context.Context) ([]domain.CashierBarAssignment, error) {
	assignments, err := s.barRepo.ListActiveAssignments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assignments")
		return nil, err
	}
	if assignments == nil {
		return []domain.CashierBarAssignment{}, nil
	}
	return assignments, nil
}
