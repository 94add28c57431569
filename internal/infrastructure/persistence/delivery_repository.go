package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/courierlog/backend/internal/domain/delivery"
	"github.com/courierlog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// FindByDriverAndDate loads the delivery for a driver-day with its groups,
// scans and resolved scanners
func (r *GormDeliveryRepository) FindByDriverAndDate(ctx context.Context, driverID uuid.UUID, date time.Time) (*delivery.Delivery, error) {
	var d delivery.Delivery
	if err := r.db.WithContext(ctx).
		Preload("Groups.Scans.Scanner").
		Where("driver_id = ? AND delivery_date = ?", driverID, shared.TruncateToDay(date)).
		First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStoreError(err)
	}
	return &d, nil
}

// FindByDriverInRange lists a driver's deliveries with delivery_date inside
// the inclusive range, oldest first
func (r *GormDeliveryRepository) FindByDriverInRange(ctx context.Context, driverID uuid.UUID, start, end time.Time) ([]delivery.Delivery, error) {
	var deliveries []delivery.Delivery
	if err := r.db.WithContext(ctx).
		Preload("Groups.Scans").
		Where("driver_id = ? AND delivery_date BETWEEN ? AND ?",
			driverID, shared.TruncateToDay(start), shared.TruncateToDay(end)).
		Order("delivery_date ASC").
		Find(&deliveries).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return deliveries, nil
}

// SubmitDay replaces the driver-day's groups with the given set inside a
// single transaction. The delivery row is created on first submission and
// reused afterwards; prior groups and their scans are deleted before the new
// ones are inserted, so a failure leaves the previous state intact.
func (r *GormDeliveryRepository) SubmitDay(ctx context.Context, driverID uuid.UUID, date time.Time, groups []delivery.Group) error {
	day := shared.TruncateToDay(date)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d delivery.Delivery
		err := tx.Where("driver_id = ? AND delivery_date = ?", driverID, day).
			First(&d).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			d = *delivery.NewDelivery(driverID, day)
			if err := tx.Omit("Groups").Create(&d).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			// Scans go with their groups through ON DELETE CASCADE
			if err := tx.Where("delivery_id = ?", d.ID).
				Delete(&delivery.Group{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&d).Update("updated_at", time.Now()).Error; err != nil {
				return err
			}
		}

		for i := range groups {
			groups[i].DeliveryID = d.ID
			for j := range groups[i].Scans {
				groups[i].Scans[j].DeliveryGroupID = groups[i].ID
			}
		}

		if len(groups) == 0 {
			return nil
		}
		return tx.Create(&groups).Error
	})
	if err != nil {
		return shared.NewStoreError(err)
	}
	return nil
}

// Ensure GormDeliveryRepository implements DeliveryRepository
var _ delivery.DeliveryRepository = (*GormDeliveryRepository)(nil)
