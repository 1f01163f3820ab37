package domain

import "time"

// Service is a catalog entry for a maintenance offering. Administered out of
// band (cmd/seed); read-only through the API.
type Service struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}
