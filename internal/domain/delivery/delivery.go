package delivery

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courierlog/backend/internal/domain/fleet"
	"github.com/courierlog/backend/internal/domain/shared"
)

// Delivery is the aggregation root for one driver's submissions on one
// calendar date. There is exactly one row per (driver, date); its groups are
// replaced wholesale on every resubmission.
type Delivery struct {
	shared.BaseEntity
	DriverID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_deliveries_driver_date,priority:1"`
	DeliveryDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_deliveries_driver_date,priority:2"`
	Groups       []Group   `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Delivery) TableName() string {
	return "deliveries"
}

// Group is a named subset of a day's deliveries sharing a batch code.
// Groups are created fresh on every submission and destroyed on edit; there
// is no update-in-place.
type Group struct {
	shared.BaseEntity
	DeliveryID    uuid.UUID `gorm:"type:uuid;not null;index"`
	GroupCode     string    `gorm:"type:varchar(100);not null"`
	ExpectedCount int       `gorm:"not null"`
	Scans         []Scan    `gorm:"foreignKey:DeliveryGroupID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Group) TableName() string {
	return "delivery_groups"
}

// Scan records one scanner's delivered count within a group.
type Scan struct {
	shared.BaseEntity
	DeliveryGroupID uuid.UUID      `gorm:"type:uuid;not null;index"`
	ScannerID       uuid.UUID      `gorm:"type:uuid;not null"`
	Scanner         *fleet.Scanner `gorm:"foreignKey:ScannerID"`
	DeliveredCount  int            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Scan) TableName() string {
	return "delivery_group_scans"
}

// NewDelivery creates the aggregation root for a driver-day.
func NewDelivery(driverID uuid.UUID, date time.Time) *Delivery {
	return &Delivery{
		BaseEntity:   shared.NewBaseEntity(),
		DriverID:     driverID,
		DeliveryDate: shared.TruncateToDay(date),
	}
}

// NewGroup creates a fresh group for a delivery.
func NewGroup(deliveryID uuid.UUID, code string, expectedCount int) (*Group, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Group code cannot be empty")
	}
	if expectedCount < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expected count cannot be negative")
	}
	return &Group{
		BaseEntity:    shared.NewBaseEntity(),
		DeliveryID:    deliveryID,
		GroupCode:     code,
		ExpectedCount: expectedCount,
	}, nil
}

// AddScan appends a resolved scan to the group.
func (g *Group) AddScan(scannerID uuid.UUID, deliveredCount int) error {
	if scannerID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Scan requires a resolved scanner")
	}
	if deliveredCount < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Delivered count cannot be negative")
	}
	g.Scans = append(g.Scans, Scan{
		BaseEntity:      shared.NewBaseEntity(),
		DeliveryGroupID: g.ID,
		ScannerID:       scannerID,
		DeliveredCount:  deliveredCount,
	})
	return nil
}

// ScanTotal is the sum of delivered counts across the group's scans.
func (g *Group) ScanTotal() int {
	total := 0
	for i := range g.Scans {
		total += g.Scans[i].DeliveredCount
	}
	return total
}

// TotalDelivered is the sum of delivered counts across every scan in every
// group of the delivery, independent of ordering.
func (d *Delivery) TotalDelivered() int {
	total := 0
	for i := range d.Groups {
		total += d.Groups[i].ScanTotal()
	}
	return total
}
