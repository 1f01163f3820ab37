package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/repository"
)

// Mock slot store
type MockSlotStore struct {
	mock.Mock
}

func (m *MockSlotStore) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

func (m *MockSlotStore) TryClaim(ctx context.Context, slotID int64) (repository.ClaimResult, *domain.Slot, error) {
	args := m.Called(ctx, slotID)
	var slot *domain.Slot
	if args.Get(1) != nil {
		slot = args.Get(1).(*domain.Slot)
	}
	return args.Get(0).(repository.ClaimResult), slot, args.Error(2)
}

func (m *MockSlotStore) Release(ctx context.Context, slotID int64) error {
	args := m.Called(ctx, slotID)
	return args.Error(0)
}

// Mock ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	if a != nil && args.Error(0) == nil {
		a.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockLedger) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockLedger) ListForClient(ctx context.Context, clientID int64) ([]domain.Appointment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockLedger) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockLedger) UpdateStatusIf(ctx context.Context, id int64, from, to domain.AppointmentStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func testSlot() *domain.Slot {
	return &domain.Slot{
		ID:        7,
		ServiceID: 1,
		Date:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:      "09:00",
		Available: true,
	}
}

func validRequest() CreateAppointmentRequest {
	return CreateAppointmentRequest{
		ServiceID:          1,
		SlotID:             7,
		ClientName:         "Joao Silva",
		PropertyAddress:    "Av. Central, 100",
		Email:              "joao@example.com",
		Phone:              "+55 11 98888-1234",
		ProblemDescription: "Leaking pipe on the third floor",
	}
}

func TestService_CreateAppointment_Success(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	slot := testSlot()
	mockSlots.On("GetByID", mock.Anything, int64(7)).Return(slot, nil)
	mockSlots.On("TryClaim", mock.Anything, int64(7)).Return(repository.ClaimOK, slot, nil)
	mockLedger.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	a, claimed, err := service.CreateAppointment(context.Background(), 42, validRequest())

	assert.NoError(t, err)
	assert.NotNil(t, a)
	assert.Equal(t, int64(999), a.ID)
	assert.Equal(t, int64(7), a.SlotID)
	assert.Equal(t, int64(42), a.ClientID)
	assert.Equal(t, domain.AppointmentScheduled, a.Status)
	assert.Equal(t, "09:00", claimed.Time)
	mockSlots.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestService_CreateAppointment_MissingFields_NoMutation(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	req := validRequest()
	req.ClientName = ""

	_, _, err := service.CreateAppointment(context.Background(), 42, req)

	assert.ErrorIs(t, err, ErrValidation)
	mockSlots.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockSlots.AssertNotCalled(t, "TryClaim", mock.Anything, mock.Anything)
}

func TestService_CreateAppointment_ServiceMismatch_NoMutation(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	slot := testSlot()
	slot.ServiceID = 2 // stale client-side selection
	mockSlots.On("GetByID", mock.Anything, int64(7)).Return(slot, nil)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	_, _, err := service.CreateAppointment(context.Background(), 42, validRequest())

	assert.ErrorIs(t, err, ErrValidation)
	mockSlots.AssertNotCalled(t, "TryClaim", mock.Anything, mock.Anything)
	mockLedger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateAppointment_SlotNotFound(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	mockSlots.On("GetByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	_, _, err := service.CreateAppointment(context.Background(), 42, validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_CreateAppointment_LostRace(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	mockSlots.On("GetByID", mock.Anything, int64(7)).Return(testSlot(), nil)
	mockSlots.On("TryClaim", mock.Anything, int64(7)).Return(repository.ClaimAlreadyTaken, nil, nil)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	_, _, err := service.CreateAppointment(context.Background(), 42, validRequest())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	mockLedger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateAppointment_LedgerFailureCompensates(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	slot := testSlot()
	mockSlots.On("GetByID", mock.Anything, int64(7)).Return(slot, nil)
	mockSlots.On("TryClaim", mock.Anything, int64(7)).Return(repository.ClaimOK, slot, nil)
	mockLedger.On("Create", mock.Anything, mock.Anything).Return(errors.New("ledger write failed"))
	mockSlots.On("Release", mock.Anything, int64(7)).Return(nil)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	_, _, err := service.CreateAppointment(context.Background(), 42, validRequest())

	assert.EqualError(t, err, "ledger write failed")
	mockSlots.AssertCalled(t, "Release", mock.Anything, int64(7))
}

func TestService_CreateAppointment_CompensationRetries(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	slot := testSlot()
	mockSlots.On("GetByID", mock.Anything, int64(7)).Return(slot, nil)
	mockSlots.On("TryClaim", mock.Anything, int64(7)).Return(repository.ClaimOK, slot, nil)
	mockLedger.On("Create", mock.Anything, mock.Anything).Return(errors.New("ledger write failed"))
	mockSlots.On("Release", mock.Anything, int64(7)).Return(errors.New("store unreachable")).Once()
	mockSlots.On("Release", mock.Anything, int64(7)).Return(nil).Once()

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	_, _, err := service.CreateAppointment(context.Background(), 42, validRequest())

	assert.EqualError(t, err, "ledger write failed")
	mockSlots.AssertNumberOfCalls(t, "Release", 2)
}

func scheduledAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:       999,
		SlotID:   7,
		ClientID: 42,
		Status:   domain.AppointmentScheduled,
	}
}

func TestService_Cancel_ByOwner(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	mockLedger.On("GetByID", mock.Anything, int64(999)).Return(scheduledAppointment(), nil)
	mockLedger.On("UpdateStatusIf", mock.Anything, int64(999), domain.AppointmentScheduled, domain.AppointmentCancelled).Return(true, nil)
	mockSlots.On("Release", mock.Anything, int64(7)).Return(nil)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	owner := domain.Principal{ID: 42, Role: domain.RoleClient}
	a, err := service.Cancel(context.Background(), 999, owner)

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, a.Status)
	assert.NotNil(t, a.CancelledAt)
	mockSlots.AssertCalled(t, "Release", mock.Anything, int64(7))
}

func TestService_Cancel_ByPlanner(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	mockLedger.On("GetByID", mock.Anything, int64(999)).Return(scheduledAppointment(), nil)
	mockLedger.On("UpdateStatusIf", mock.Anything, int64(999), domain.AppointmentScheduled, domain.AppointmentCancelled).Return(true, nil)
	mockSlots.On("Release", mock.Anything, int64(7)).Return(nil)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	planner := domain.Principal{ID: 0, Role: domain.RolePlanner}
	_, err := service.Cancel(context.Background(), 999, planner)
	assert.NoError(t, err)
}

func TestService_Cancel_ByStranger_Forbidden(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	mockLedger.On("GetByID", mock.Anything, int64(999)).Return(scheduledAppointment(), nil)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	stranger := domain.Principal{ID: 77, Role: domain.RoleClient}
	_, err := service.Cancel(context.Background(), 999, stranger)

	assert.ErrorIs(t, err, ErrForbidden)
	mockSlots.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestService_Cancel_Twice_Idempotent(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	cancelled := scheduledAppointment()
	cancelled.Status = domain.AppointmentCancelled
	mockLedger.On("GetByID", mock.Anything, int64(999)).Return(cancelled, nil)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	owner := domain.Principal{ID: 42, Role: domain.RoleClient}
	_, err := service.Cancel(context.Background(), 999, owner)

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	mockSlots.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestService_Cancel_ConcurrentLoser(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	// Status still reads scheduled, but another cancel wins the conditional
	// update first.
	mockLedger.On("GetByID", mock.Anything, int64(999)).Return(scheduledAppointment(), nil)
	mockLedger.On("UpdateStatusIf", mock.Anything, int64(999), domain.AppointmentScheduled, domain.AppointmentCancelled).Return(false, nil)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	owner := domain.Principal{ID: 42, Role: domain.RoleClient}
	_, err := service.Cancel(context.Background(), 999, owner)

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	mockSlots.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestService_Complete_PlannerOnly(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	client := domain.Principal{ID: 42, Role: domain.RoleClient}
	_, err := service.Complete(context.Background(), 999, client)
	assert.ErrorIs(t, err, ErrForbidden)

	mockLedger.On("GetByID", mock.Anything, int64(999)).Return(scheduledAppointment(), nil)
	mockLedger.On("UpdateStatusIf", mock.Anything, int64(999), domain.AppointmentScheduled, domain.AppointmentCompleted).Return(true, nil)

	planner := domain.Principal{Role: domain.RolePlanner}
	a, err := service.Complete(context.Background(), 999, planner)
	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentCompleted, a.Status)
}

func TestService_List_ScopedByRole(t *testing.T) {
	mockSlots := new(MockSlotStore)
	mockLedger := new(MockLedger)

	own := []domain.Appointment{{ID: 1, ClientID: 42}}
	all := []domain.Appointment{{ID: 1, ClientID: 42}, {ID: 2, ClientID: 77}}
	mockLedger.On("ListForClient", mock.Anything, int64(42)).Return(own, nil)
	mockLedger.On("ListAll", mock.Anything).Return(all, nil)

	service := NewService(mockSlots, mockLedger, nil, zap.NewNop())

	got, err := service.List(context.Background(), domain.Principal{ID: 42, Role: domain.RoleClient})
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = service.List(context.Background(), domain.Principal{Role: domain.RolePlanner})
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}
