package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
)

// Credential is an opaque login attempt. DisplayName is empty for the
// planner's shared-secret login.
type Credential struct {
	DisplayName string
	Secret      string
}

// CredentialVerifier resolves a credential into a Principal. The booking
// engine depends only on the Principal, so a deployment can swap this toy
// scheme for a real identity provider without touching booking code.
type CredentialVerifier interface {
	Verify(ctx context.Context, cred Credential) (domain.Principal, error)
}

// ClientVerifier checks (first name, last four digits of the registered
// phone) against the stored profile.
type ClientVerifier struct {
	users UserRepositoryInterface
}

func NewClientVerifier(users UserRepositoryInterface) *ClientVerifier {
	return &ClientVerifier{users: users}
}

func (v *ClientVerifier) Verify(ctx context.Context, cred Credential) (domain.Principal, error) {
	name := strings.TrimSpace(cred.DisplayName)
	if name == "" || cred.Secret == "" {
		return domain.Principal{}, ErrInvalidCredentials
	}

	user, err := v.users.GetByFirstName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Principal{}, ErrInvalidCredentials
		}
		return domain.Principal{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SecretHash), []byte(cred.Secret)); err != nil {
		return domain.Principal{}, ErrInvalidCredentials
	}

	return domain.Principal{
		ID:          user.ID,
		DisplayName: user.FirstName,
		Role:        domain.RoleClient,
	}, nil
}

// PlannerVerifier checks a single shared secret against a static bcrypt hash
// from configuration. Verification yields a synthetic planner Principal.
type PlannerVerifier struct {
	secretHash string
}

func NewPlannerVerifier(secretHash string) *PlannerVerifier {
	return &PlannerVerifier{secretHash: secretHash}
}

func (v *PlannerVerifier) Verify(ctx context.Context, cred Credential) (domain.Principal, error) {
	if cred.Secret == "" {
		return domain.Principal{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(v.secretHash), []byte(cred.Secret)); err != nil {
		return domain.Principal{}, ErrInvalidCredentials
	}

	return domain.Principal{
		ID:          0,
		DisplayName: "Planner",
		Role:        domain.RolePlanner,
	}, nil
}

// LastFourDigits extracts the phone-suffix secret used at registration.
func LastFourDigits(phone string) (string, bool) {
	var digits []rune
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return "", false
	}
	return string(digits[len(digits)-4:]), true
}
