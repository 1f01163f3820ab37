package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByFirstName(ctx context.Context, firstName string) (*domain.User, error) {
	args := m.Called(ctx, firstName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type fakeJWT struct{}

func (fakeJWT) GenerateToken(userID int64, displayName, role string) (string, error) {
	return "token-" + role, nil
}

func newTestService(users *MockUserRepository, plannerSecret string) *Service {
	hash, _ := bcrypt.GenerateFromPassword([]byte(plannerSecret), bcrypt.MinCost)
	return NewService(users, NewClientVerifier(users), NewPlannerVerifier(string(hash)), fakeJWT{})
}

func TestService_RegisterClient_HashesPhoneSuffix(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "joao@example.com").Return(nil, gorm.ErrRecordNotFound)

	var stored *domain.User
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		u := args.Get(1).(*domain.User)
		cp := *u
		stored = &cp
	}).Return(nil)

	service := newTestService(users, "planner-secret")

	user, err := service.RegisterClient(context.Background(), RegisterRequest{
		FirstName: "Joao",
		LastName:  "Silva",
		Email:     "Joao@Example.com",
		Phone:     "+55 11 98888-1234",
	})

	assert.NoError(t, err)
	assert.Equal(t, "joao@example.com", user.Email)
	assert.Equal(t, domain.RoleClient, user.Role)
	assert.Empty(t, user.SecretHash, "hash must not leak in the response")

	assert.True(t, strings.HasPrefix(stored.SecretHash, "$2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.SecretHash), []byte("1234")))
}

func TestService_RegisterClient_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "joao@example.com").Return(&domain.User{ID: 1}, nil)

	service := newTestService(users, "planner-secret")

	_, err := service.RegisterClient(context.Background(), RegisterRequest{
		FirstName: "Joao",
		Email:     "joao@example.com",
		Phone:     "+55 11 98888-1234",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_RegisterClient_PhoneTooShort(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(users, "planner-secret")

	_, err := service.RegisterClient(context.Background(), RegisterRequest{
		FirstName: "Joao",
		Email:     "joao@example.com",
		Phone:     "123",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func registeredUser(t *testing.T) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	assert.NoError(t, err)
	return &domain.User{
		ID:         42,
		FirstName:  "Joao",
		Phone:      "+55 11 98888-1234",
		SecretHash: string(hash),
		Role:       domain.RoleClient,
	}
}

func TestService_LoginClient_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByFirstName", mock.Anything, "Joao").Return(registeredUser(t), nil)

	service := newTestService(users, "planner-secret")

	res, err := service.LoginClient(context.Background(), LoginRequest{FirstName: "Joao", Secret: "1234"})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), res.Principal.ID)
	assert.Equal(t, domain.RoleClient, res.Principal.Role)
	assert.Equal(t, "token-client", res.AccessToken)
}

func TestService_LoginClient_WrongSecret(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByFirstName", mock.Anything, "Joao").Return(registeredUser(t), nil)

	service := newTestService(users, "planner-secret")

	_, err := service.LoginClient(context.Background(), LoginRequest{FirstName: "Joao", Secret: "9999"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginClient_UnknownName(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByFirstName", mock.Anything, "Maria").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(users, "planner-secret")

	_, err := service.LoginClient(context.Background(), LoginRequest{FirstName: "Maria", Secret: "1234"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginPlanner(t *testing.T) {
	users := new(MockUserRepository)
	service := newTestService(users, "planner-secret")

	res, err := service.LoginPlanner(context.Background(), PlannerLoginRequest{Secret: "planner-secret"})
	assert.NoError(t, err)
	assert.Equal(t, domain.RolePlanner, res.Principal.Role)
	assert.True(t, res.Principal.IsPlanner())

	_, err = service.LoginPlanner(context.Background(), PlannerLoginRequest{Secret: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLastFourDigits(t *testing.T) {
	got, ok := LastFourDigits("+55 (11) 98888-1234")
	assert.True(t, ok)
	assert.Equal(t, "1234", got)

	_, ok = LastFourDigits("12a3")
	assert.False(t, ok)
}
