package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DeliveryRepository defines the interface for delivery persistence
type DeliveryRepository interface {
	// FindByDriverAndDate loads the delivery for a driver-day with its
	// groups, scans and scanner relations. Returns shared.ErrNotFound when
	// no delivery exists for that date.
	FindByDriverAndDate(ctx context.Context, driverID uuid.UUID, date time.Time) (*Delivery, error)

	// FindByDriverInRange loads a driver's deliveries with groups and scans
	// for an inclusive date range, ordered by date ascending.
	FindByDriverInRange(ctx context.Context, driverID uuid.UUID, start, end time.Time) ([]Delivery, error)

	// SubmitDay makes the given groups the authoritative state for the
	// driver-day: it upserts the delivery row, deletes any prior groups
	// (cascading to scans) and inserts the new ones, all inside a single
	// transaction.
	SubmitDay(ctx context.Context, driverID uuid.UUID, date time.Time, groups []Group) error
}
