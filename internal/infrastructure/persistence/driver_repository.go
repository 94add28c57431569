package persistence

import (
	"context"
	"errors"

	"github.com/courierlog/backend/internal/domain/fleet"
	"github.com/courierlog/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDriverRepository implements DriverRepository using GORM
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GormDriverRepository
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// FindByClerkAuthID finds a driver by its Clerk identity
func (r *GormDriverRepository) FindByClerkAuthID(ctx context.Context, clerkAuthID string) (*fleet.Driver, error) {
	var driver fleet.Driver
	if err := r.db.WithContext(ctx).
		Where("clerk_auth_id = ?", clerkAuthID).
		First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStoreError(err)
	}
	return &driver, nil
}

// Save creates or updates a driver
func (r *GormDriverRepository) Save(ctx context.Context, driver *fleet.Driver) error {
	if err := r.db.WithContext(ctx).Save(driver).Error; err != nil {
		return shared.NewStoreError(err)
	}
	return nil
}

// Ensure GormDriverRepository implements DriverRepository
var _ fleet.DriverRepository = (*GormDriverRepository)(nil)
