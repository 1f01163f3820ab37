package auth

import (
	"context"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByFirstName(ctx context.Context, firstName string) (*domain.User, error)
}

type jwtService interface {
	GenerateToken(userID int64, displayName, role string) (string, error)
}
