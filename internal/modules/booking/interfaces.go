package booking

import (
	"context"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/repository"
)

// SlotStore owns slot availability. TryClaim and Release are the only
// mutations; both are atomic conditional updates in the store, so the engine
// never takes a lock of its own.
type SlotStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	TryClaim(ctx context.Context, slotID int64) (repository.ClaimResult, *domain.Slot, error)
	Release(ctx context.Context, slotID int64) error
}

// AppointmentLedger is the durable record of appointments. The booking
// engine is its sole writer.
type AppointmentLedger interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListForClient(ctx context.Context, clientID int64) ([]domain.Appointment, error)
	ListAll(ctx context.Context) ([]domain.Appointment, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.AppointmentStatus) (bool, error)
}

// EventPublisher pushes appointment lifecycle events to connected planner
// dashboards. Best-effort; never blocks the booking path.
type EventPublisher interface {
	AppointmentCreated(a *domain.Appointment, slot *domain.Slot)
	AppointmentCancelled(a *domain.Appointment)
	AppointmentCompleted(a *domain.Appointment)
}
