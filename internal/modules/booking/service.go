package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/pkg/validator"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/repository"
)

type Service struct {
	slots  SlotStore
	ledger AppointmentLedger
	events EventPublisher
	logger *zap.Logger
}

func NewService(slots SlotStore, ledger AppointmentLedger, events EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		slots:  slots,
		ledger: ledger,
		events: events,
		logger: logger,
	}
}

// CreateAppointment converts a slot selection into a confirmed appointment.
// The claim is a single conditional update in the slot store; if the ledger
// write then fails, the claim is compensated by releasing the slot, so a
// failed booking never strands a slot as unavailable.
func (s *Service) CreateAppointment(ctx context.Context, clientID int64, req CreateAppointmentRequest) (*domain.Appointment, *domain.Slot, error) {
	// The engine re-validates rather than trusting transport-level binding;
	// nothing past this point should see incomplete client fields.
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, nil, ErrValidation
	}

	// Stale-selection defense: the slot must still belong to the service the
	// client picked. Checked before any mutation.
	slot, err := s.slots.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSlotNotFound
		}
		return nil, nil, err
	}
	if slot.ServiceID != req.ServiceID {
		return nil, nil, ErrValidation
	}

	result, claimed, err := s.slots.TryClaim(ctx, req.SlotID)
	if err != nil {
		return nil, nil, err
	}
	switch result {
	case repository.ClaimNotFound:
		return nil, nil, ErrSlotNotFound
	case repository.ClaimAlreadyTaken:
		// Losing the race is the expected outcome under contention, not an
		// error condition.
		s.logger.Info("slot already taken", zap.Int64("slot_id", req.SlotID))
		return nil, nil, ErrSlotUnavailable
	}

	a := &domain.Appointment{
		SlotID:             claimed.ID,
		ServiceID:          claimed.ServiceID,
		ClientID:           clientID,
		ClientName:         req.ClientName,
		PropertyAddress:    req.PropertyAddress,
		ClientEmail:        req.Email,
		ClientPhone:        req.Phone,
		ProblemDescription: req.ProblemDescription,
		Status:             domain.AppointmentScheduled,
	}

	if err := s.ledger.Create(ctx, a); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The one-appointment-per-slot index caught a writer that slipped
			// past the claim; treat it as a lost race.
			s.compensate(ctx, claimed.ID)
			return nil, nil, ErrSlotUnavailable
		}

		s.compensate(ctx, claimed.ID)
		return nil, nil, err
	}

	if s.events != nil {
		s.events.AppointmentCreated(a, claimed)
	}
	return a, claimed, nil
}

// compensate releases a claimed slot after a failed ledger write, retrying
// once. A slot left unavailable with no appointment cannot be repaired here,
// so that case is escalated for out-of-band remediation.
func (s *Service) compensate(ctx context.Context, slotID int64) {
	err := s.slots.Release(ctx, slotID)
	if err == nil {
		return
	}

	time.Sleep(100 * time.Millisecond)
	if err = s.slots.Release(ctx, slotID); err == nil {
		return
	}

	s.logger.Error("consistency violation: slot orphaned after failed ledger write",
		zap.String("consistency_violation", "orphaned_slot"),
		zap.Int64("slot_id", slotID),
		zap.Error(err),
	)
}

// Cancel marks an appointment cancelled and releases its slot as one logical
// unit. Cancelling twice is idempotent: the second call reports the terminal
// state without escalating.
func (s *Service) Cancel(ctx context.Context, appointmentID int64, principal domain.Principal) (*domain.Appointment, error) {
	a, err := s.ledger.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !principal.IsPlanner() && a.ClientID != principal.ID {
		return nil, ErrForbidden
	}

	switch a.Status {
	case domain.AppointmentCancelled:
		return nil, ErrAlreadyCancelled
	case domain.AppointmentCompleted:
		return nil, ErrValidation
	}

	// Conditional transition so a concurrent double-cancel serializes through
	// the store exactly like slot claims do.
	ok, err := s.ledger.UpdateStatusIf(ctx, appointmentID, domain.AppointmentScheduled, domain.AppointmentCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyCancelled
	}

	if err := s.slots.Release(ctx, a.SlotID); err != nil {
		time.Sleep(100 * time.Millisecond)
		if err = s.slots.Release(ctx, a.SlotID); err != nil {
			s.logger.Error("consistency violation: slot not released on cancel",
				zap.String("consistency_violation", "orphaned_slot"),
				zap.Int64("slot_id", a.SlotID),
				zap.Int64("appointment_id", appointmentID),
				zap.Error(err),
			)
		}
	}

	now := time.Now()
	a.Status = domain.AppointmentCancelled
	a.CancelledAt = &now

	if s.events != nil {
		s.events.AppointmentCancelled(a)
	}
	return a, nil
}

// Complete marks a scheduled appointment done. Planner-only; the slot stays
// consumed.
func (s *Service) Complete(ctx context.Context, appointmentID int64, principal domain.Principal) (*domain.Appointment, error) {
	if !principal.IsPlanner() {
		return nil, ErrForbidden
	}

	a, err := s.ledger.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ok, err := s.ledger.UpdateStatusIf(ctx, appointmentID, domain.AppointmentScheduled, domain.AppointmentCompleted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrValidation
	}

	a.Status = domain.AppointmentCompleted

	if s.events != nil {
		s.events.AppointmentCompleted(a)
	}
	return a, nil
}

// Get returns one appointment, visible to its owning client and to planners.
func (s *Service) Get(ctx context.Context, appointmentID int64, principal domain.Principal) (*domain.Appointment, error) {
	a, err := s.ledger.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !principal.IsPlanner() && a.ClientID != principal.ID {
		return nil, ErrForbidden
	}
	return a, nil
}

// List returns the caller's own appointments; planners see all of them.
func (s *Service) List(ctx context.Context, principal domain.Principal) ([]domain.Appointment, error) {
	if principal.IsPlanner() {
		return s.ledger.ListAll(ctx)
	}
	return s.ledger.ListForClient(ctx, principal.ID)
}
