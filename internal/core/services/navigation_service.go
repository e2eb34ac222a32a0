package services

import (
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
)

type navigationService struct {
	menu domain.Menu
}

// NewNavigationService serves menu, which is assumed to be validated already.
func NewNavigationService(menu domain.Menu) portssvc.NavigationSvc {
	return &navigationService{menu: menu}
}

var _ portssvc.NavigationSvc = (*navigationService)(nil)

func (s *navigationService) MenuFor(role *domain.Role) domain.Menu {
	return domain.FilterMenu(s.menu, role)
}
