package dashboard

import (
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
)

// Publisher adapts the hub to the booking engine's event interface.
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) AppointmentCreated(a *domain.Appointment, slot *domain.Slot) {
	p.hub.Broadcast(&Event{
		Type: EventAppointmentCreated,
		Payload: map[string]any{
			"appointment_id": a.ID,
			"slot_id":        slot.ID,
			"service_id":     slot.ServiceID,
			"date":           slot.Date.Format("2006-01-02"),
			"time":           slot.Time,
			"client_name":    a.ClientName,
		},
	})
}

func (p *Publisher) AppointmentCancelled(a *domain.Appointment) {
	p.hub.Broadcast(&Event{
		Type: EventAppointmentCancelled,
		Payload: map[string]any{
			"appointment_id": a.ID,
			"slot_id":        a.SlotID,
		},
	})
}

func (p *Publisher) AppointmentCompleted(a *domain.Appointment) {
	p.hub.Broadcast(&Event{
		Type: EventAppointmentCompleted,
		Payload: map[string]any{
			"appointment_id": a.ID,
		},
	})
}
