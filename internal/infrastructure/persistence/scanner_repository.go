package persistence

import (
	"context"
	"errors"

	"github.com/courierlog/backend/internal/domain/fleet"
	"github.com/courierlog/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormScannerRepository implements ScannerRepository using GORM
type GormScannerRepository struct {
	db *gorm.DB
}

// NewGormScannerRepository creates a new GormScannerRepository
func NewGormScannerRepository(db *gorm.DB) *GormScannerRepository {
	return &GormScannerRepository{db: db}
}

// FindActiveByCode finds an active scanner by its exact code
func (r *GormScannerRepository) FindActiveByCode(ctx context.Context, code string) (*fleet.Scanner, error) {
	var scanner fleet.Scanner
	if err := r.db.WithContext(ctx).
		Where("scanner_code = ? AND active = ?", code, true).
		First(&scanner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStoreError(err)
	}
	return &scanner, nil
}

// SearchActiveCodes returns active scanner codes containing the query
// substring, case-insensitively, up to limit results
func (r *GormScannerRepository) SearchActiveCodes(ctx context.Context, query string, limit int) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&fleet.Scanner{}).
		Where("active = ? AND scanner_code ILIKE ?", true, "%"+query+"%").
		Order("scanner_code ASC").
		Limit(limit).
		Pluck("scanner_code", &codes).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return codes, nil
}

// Ensure GormScannerRepository implements ScannerRepository
var _ fleet.ScannerRepository = (*GormScannerRepository)(nil)
