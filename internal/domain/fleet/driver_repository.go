package fleet

import "context"

// DriverRepository defines the interface for driver persistence
type DriverRepository interface {
	// FindByClerkAuthID finds a driver by its identity-provider user id
	FindByClerkAuthID(ctx context.Context, clerkAuthID string) (*Driver, error)

	// Save creates or updates a driver
	Save(ctx context.Context, driver *Driver) error
}

// ScannerRepository defines the interface for scanner lookups
type ScannerRepository interface {
	// FindActiveByCode resolves a scanner by exact code with active=true
	FindActiveByCode(ctx context.Context, code string) (*Scanner, error)

	// SearchActiveCodes returns active scanner codes containing the query,
	// case-insensitively, up to limit entries
	SearchActiveCodes(ctx context.Context, query string, limit int) ([]string, error)
}
