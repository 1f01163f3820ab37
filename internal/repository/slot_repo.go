package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
)

// ClaimResult is the outcome of a conditional claim on a slot.
type ClaimResult int

const (
	ClaimOK ClaimResult = iota
	ClaimAlreadyTaken
	ClaimNotFound
)

type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Create(ctx context.Context, slot *domain.Slot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	var slot domain.Slot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListAvailable returns the free slots for a service on a calendar day,
// ordered by time of day. An empty result is not an error.
func (r *SlotRepository) ListAvailable(ctx context.Context, serviceID int64, date time.Time) ([]domain.Slot, error) {
	var slots []domain.Slot
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND date = ? AND available = ?", serviceID, domain.SlotDay(date), true).
		Order("time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// TryClaim flips a slot to unavailable if and only if it is currently
// available, as a single conditional UPDATE. The database serializes
// concurrent claims on the same row, so among N racing callers exactly one
// sees ClaimOK; nothing above this layer takes a lock.
func (r *SlotRepository) TryClaim(ctx context.Context, slotID int64) (ClaimResult, *domain.Slot, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Slot{}).
		Where("id = ? AND available = ?", slotID, true).
		Update("available", false)
	if tx.Error != nil {
		return ClaimNotFound, nil, tx.Error
	}

	if tx.RowsAffected == 0 {
		// Lost the race or the slot never existed; tell the caller which.
		var slot domain.Slot
		if err := r.db.WithContext(ctx).First(&slot, slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ClaimNotFound, nil, nil
			}
			return ClaimNotFound, nil, err
		}
		return ClaimAlreadyTaken, nil, nil
	}

	var slot domain.Slot
	if err := r.db.WithContext(ctx).First(&slot, slotID).Error; err != nil {
		return ClaimNotFound, nil, err
	}
	return ClaimOK, &slot, nil
}

// Release flips a slot back to available. Releasing a slot that is already
// available is a no-op; only a missing slot is an error.
func (r *SlotRepository) Release(ctx context.Context, slotID int64) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Slot{}).
		Where("id = ?", slotID).
		Update("available", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
