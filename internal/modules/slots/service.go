package slots

import (
	"context"
	"errors"
	"time"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
)

var ErrValidation = errors.New("validation error")

// SlotReader is the query side of the slot store; mutations stay with the
// booking engine.
type SlotReader interface {
	ListAvailable(ctx context.Context, serviceID int64, date time.Time) ([]domain.Slot, error)
}

type Service struct {
	slots SlotReader
}

func NewService(slots SlotReader) *Service {
	return &Service{slots: slots}
}

// ListAvailable returns the free slots for a (service, date) pair ordered by
// time of day. No slots is an empty list, not an error, so the client can
// tell "nothing free" apart from a failed query.
func (s *Service) ListAvailable(ctx context.Context, serviceID int64, dateStr string) ([]domain.Slot, error) {
	if serviceID <= 0 {
		return nil, ErrValidation
	}

	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrValidation
	}

	found, err := s.slots.ListAvailable(ctx, serviceID, domain.SlotDay(day))
	if err != nil {
		return nil, err
	}
	if found == nil {
		found = []domain.Slot{}
	}
	return found, nil
}
