package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	SlotID             int64      `gorm:"column:slot_id"`
	ServiceID          int64      `gorm:"column:service_id"`
	ClientID           int64      `gorm:"column:client_id"`
	ClientName         string     `gorm:"column:client_name"`
	PropertyAddress    string     `gorm:"column:property_address"`
	ClientEmail        string     `gorm:"column:client_email"`
	ClientPhone        string     `gorm:"column:client_phone"`
	ProblemDescription *string    `gorm:"column:problem_description"`
	Status             string     `gorm:"column:status"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

func toDomainAppointment(m appointmentModel) *domain.Appointment {
	var problem string
	if m.ProblemDescription != nil {
		problem = *m.ProblemDescription
	}

	return &domain.Appointment{
		ID:                 m.ID,
		SlotID:             m.SlotID,
		ServiceID:          m.ServiceID,
		ClientID:           m.ClientID,
		ClientName:         m.ClientName,
		PropertyAddress:    m.PropertyAddress,
		ClientEmail:        m.ClientEmail,
		ClientPhone:        m.ClientPhone,
		ProblemDescription: problem,
		Status:             domain.AppointmentStatus(m.Status),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		CancelledAt:        m.CancelledAt,
	}
}

func toAppointmentModel(a *domain.Appointment) appointmentModel {
	var problem *string
	if a.ProblemDescription != "" {
		v := a.ProblemDescription
		problem = &v
	}

	return appointmentModel{
		ID:                 a.ID,
		SlotID:             a.SlotID,
		ServiceID:          a.ServiceID,
		ClientID:           a.ClientID,
		ClientName:         a.ClientName,
		PropertyAddress:    a.PropertyAddress,
		ClientEmail:        a.ClientEmail,
		ClientPhone:        a.ClientPhone,
		ProblemDescription: problem,
		Status:             string(a.Status),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
		CancelledAt:        a.CancelledAt,
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	m := toAppointmentModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*a = *toDomainAppointment(m)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var m appointmentModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainAppointment(m), nil
}

func (r *AppointmentRepository) ListForClient(ctx context.Context, clientID int64) ([]domain.Appointment, error) {
	var models []appointmentModel
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Appointment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAppointment(m))
	}
	return out, nil
}

func (r *AppointmentRepository) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	var models []appointmentModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Appointment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAppointment(m))
	}
	return out, nil
}

// UpdateStatusIf transitions an appointment from one status to another as a
// conditional UPDATE, mirroring how slot claims serialize. RowsAffected==0
// means the appointment was not in the expected status (or does not exist).
func (r *AppointmentRepository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.AppointmentStatus) (bool, error) {
	updates := map[string]any{"status": string(to), "updated_at": time.Now()}
	if to == domain.AppointmentCancelled {
		updates["cancelled_at"] = time.Now()
	}

	tx := r.db.WithContext(ctx).
		Model(&appointmentModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
