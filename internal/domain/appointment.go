package domain

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment is a confirmed booking holding a one-to-one claim on a slot.
// SlotID never changes after creation; status transitions are the only
// permitted mutation, and cancellation releases the slot as a coupled action.
type Appointment struct {
	ID                 int64             `json:"id"`
	SlotID             int64             `json:"slot_id" gorm:"uniqueIndex:idx_one_appointment_per_slot,where:status = 'scheduled'"`
	ServiceID          int64             `json:"service_id"`
	ClientID           int64             `json:"client_id"`
	ClientName         string            `json:"client_name"`
	PropertyAddress    string            `json:"property_address"`
	ClientEmail        string            `json:"client_email"`
	ClientPhone        string            `json:"client_phone"`
	ProblemDescription string            `json:"problem_description"`
	Status             AppointmentStatus `json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
}
