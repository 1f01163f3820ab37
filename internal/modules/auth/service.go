package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
)

// Service contains all business logic for registration and login
type Service struct {
	users   UserRepositoryInterface
	clients CredentialVerifier
	planner CredentialVerifier
	jwt     jwtService
}

type LoginResult struct {
	Principal   domain.Principal
	AccessToken string
}

func NewService(users UserRepositoryInterface, clients, planner CredentialVerifier, jwt jwtService) *Service {
	return &Service{
		users:   users,
		clients: clients,
		planner: planner,
		jwt:     jwt,
	}
}

// RegisterClient creates a client profile. The login secret is the last four
// digits of the registered phone, stored only as a bcrypt hash.
func (s *Service) RegisterClient(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	secret, ok := LastFourDigits(req.Phone)
	if !ok {
		return nil, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      email,
		Phone:      strings.TrimSpace(req.Phone),
		SecretHash: string(hash),
		Role:       domain.RoleClient,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.SecretHash = ""
	return user, nil
}

func (s *Service) LoginClient(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	return s.login(ctx, s.clients, Credential{DisplayName: req.FirstName, Secret: req.Secret})
}

func (s *Service) LoginPlanner(ctx context.Context, req PlannerLoginRequest) (*LoginResult, error) {
	return s.login(ctx, s.planner, Credential{Secret: req.Secret})
}

func (s *Service) login(ctx context.Context, verifier CredentialVerifier, cred Credential) (*LoginResult, error) {
	principal, err := verifier.Verify(ctx, cred)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(principal.ID, principal.DisplayName, string(principal.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResult{Principal: principal, AccessToken: token}, nil
}
