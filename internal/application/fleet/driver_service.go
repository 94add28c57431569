package fleet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/courierlog/backend/internal/domain/fleet"
	"github.com/courierlog/backend/internal/domain/shared"
)

// Sync statuses returned to the client.
const (
	SyncStatusCreated = "created"
	SyncStatusUpdated = "updated"
)

// SyncDriverRequest mirrors an identity-provider user into the driver table.
type SyncDriverRequest struct {
	ClerkAuthID string
	Email       string
	FirstName   string
	LastName    string
}

// DriverResponse is the stored driver row echoed back to the client.
type DriverResponse struct {
	ID          uuid.UUID `json:"id"`
	ClerkAuthID string    `json:"clerk_auth_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SyncDriverResponse reports whether the sync created or updated the row.
type SyncDriverResponse struct {
	Status string         `json:"status"`
	Driver DriverResponse `json:"driver"`
}

// DriverService handles mirroring drivers from the identity provider.
// The sync operation is a pure upsert keyed on the provider user id, meant
// to be invoked once per session bootstrap.
type DriverService struct {
	driverRepo fleet.DriverRepository
}

// NewDriverService creates a new DriverService
func NewDriverService(driverRepo fleet.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// Sync creates the driver on first call and refreshes name and email on
// every subsequent call. Calling it twice with the same identity leaves
// exactly one row reflecting the latest names.
func (s *DriverService) Sync(ctx context.Context, req SyncDriverRequest) (*SyncDriverResponse, error) {
	if req.ClerkAuthID == "" || req.Email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Missing required fields")
	}

	fullName := fleet.FullNameFromParts(req.FirstName, req.LastName)

	existing, err := s.driverRepo.FindByClerkAuthID(ctx, req.ClerkAuthID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := existing.UpdateProfile(fullName, req.Email); err != nil {
			return nil, err
		}
		if err := s.driverRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return &SyncDriverResponse{Status: SyncStatusUpdated, Driver: toDriverResponse(existing)}, nil
	}

	driver, err := fleet.NewDriver(req.ClerkAuthID, fullName, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}
	return &SyncDriverResponse{Status: SyncStatusCreated, Driver: toDriverResponse(driver)}, nil
}

func toDriverResponse(d *fleet.Driver) DriverResponse {
	return DriverResponse{
		ID:          d.ID,
		ClerkAuthID: d.ClerkAuthID,
		FullName:    d.FullName,
		Email:       d.Email,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
