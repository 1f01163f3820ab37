package domain

import "time"

type UserRole string

const (
	RoleClient  UserRole = "client"
	RolePlanner UserRole = "planner"
)

type User struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name" validate:"required"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email" validate:"required,email" gorm:"uniqueIndex"`
	Phone      string    `json:"phone" validate:"required"`
	SecretHash string    `json:"-"`
	Role       UserRole  `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Principal is the per-request identity rebuilt from a verified credential.
// Booking authorization depends only on ID and Role.
type Principal struct {
	ID          int64
	DisplayName string
	Role        UserRole
}

func (p Principal) IsPlanner() bool { return p.Role == RolePlanner }
