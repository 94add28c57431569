package persistence

import (
	"context"
	"time"

	"github.com/courierlog/backend/internal/domain/report"
	"github.com/courierlog/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormScanRowRepository implements ScanRowRepository using GORM
type GormScanRowRepository struct {
	db *gorm.DB
}

// NewGormScanRowRepository creates a new GormScanRowRepository
func NewGormScanRowRepository(db *gorm.DB) *GormScanRowRepository {
	return &GormScanRowRepository{db: db}
}

// FindScanRows returns every scan with delivery_date inside the inclusive
// range, joined through its group and delivery to the driver and scanner
func (r *GormScanRowRepository) FindScanRows(ctx context.Context, start, end time.Time) ([]report.ScanRow, error) {
	var rows []report.ScanRow
	if err := r.db.WithContext(ctx).
		Table("delivery_group_scans AS s").
		Select("dr.full_name AS driver_name, dr.email AS driver_email, d.delivery_date, g.group_code, sc.scanner_code, s.delivered_count").
		Joins("JOIN delivery_groups g ON g.id = s.delivery_group_id").
		Joins("JOIN deliveries d ON d.id = g.delivery_id").
		Joins("JOIN drivers dr ON dr.id = d.driver_id").
		Joins("LEFT JOIN scanners sc ON sc.id = s.scanner_id").
		Where("d.delivery_date BETWEEN ? AND ?",
			shared.TruncateToDay(start), shared.TruncateToDay(end)).
		Order("d.delivery_date ASC, dr.full_name ASC, g.group_code ASC").
		Scan(&rows).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return rows, nil
}

// Ensure GormScanRowRepository implements ScanRowRepository
var _ report.ScanRowRepository = (*GormScanRowRepository)(nil)
