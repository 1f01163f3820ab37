package booking

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotUnavailable  = errors.New("slot unavailable")
	ErrNotFound         = errors.New("appointment not found")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyCancelled = errors.New("appointment already cancelled")
)
