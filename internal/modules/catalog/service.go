package catalog

import (
	"context"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
)

// ServiceRepository is the read side of the offering catalog.
type ServiceRepository interface {
	ListActive(ctx context.Context) ([]domain.Service, error)
}

type Service struct {
	services ServiceRepository
}

func NewService(services ServiceRepository) *Service {
	return &Service{services: services}
}

// ListServices returns the bookable offerings. Read-only; transport errors
// propagate to the caller untouched.
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.ListActive(ctx)
}
