package domain

import "time"

// Slot is a bookable (service, date, time) unit. The (ServiceID, Date, Time)
// triple is unique. Availability is owned by the slot repository: the only
// mutations are the conditional claim and the compensating release.
type Slot struct {
	ID        int64     `json:"id"`
	ServiceID int64     `json:"service_id" gorm:"uniqueIndex:idx_slot_unit"`
	Date      time.Time `json:"date" gorm:"uniqueIndex:idx_slot_unit"`
	Time      string    `json:"time" gorm:"uniqueIndex:idx_slot_unit"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}

// SlotDay normalizes a timestamp to the calendar day slots are keyed by.
func SlotDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
