package fleet

import (
	"strings"
	"time"

	"github.com/courierlog/backend/internal/domain/shared"
)

// Driver is a delivery worker mirrored from the external identity provider.
// It is created on first sync and updated on every subsequent sync; it is
// never deleted by this system.
type Driver struct {
	shared.BaseEntity
	ClerkAuthID string `gorm:"type:varchar(100);not null;uniqueIndex"`
	FullName    string `gorm:"type:varchar(200);not null"`
	Email       string `gorm:"type:varchar(200);not null;index"`
}

// TableName returns the table name for GORM
func (Driver) TableName() string {
	return "drivers"
}

// NewDriver creates a driver mirrored from an identity-provider user.
func NewDriver(clerkAuthID, fullName, email string) (*Driver, error) {
	if strings.TrimSpace(clerkAuthID) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Driver identity cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Driver email cannot be empty")
	}
	if fullName == "" {
		fullName = UnknownName
	}
	return &Driver{
		BaseEntity:  shared.NewBaseEntity(),
		ClerkAuthID: clerkAuthID,
		FullName:    fullName,
		Email:       email,
	}, nil
}

// UnknownName is used when the identity provider carries no name parts.
const UnknownName = "Unknown"

// FullNameFromParts joins first and last name the way the identity provider
// reports them, falling back to UnknownName when both are blank.
func FullNameFromParts(first, last string) string {
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		return UnknownName
	}
	return name
}

// UpdateProfile refreshes the mirrored name and email on a sync call.
func (d *Driver) UpdateProfile(fullName, email string) error {
	if strings.TrimSpace(email) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Driver email cannot be empty")
	}
	if fullName == "" {
		fullName = UnknownName
	}
	d.FullName = fullName
	d.Email = email
	d.UpdatedAt = time.Now()
	return nil
}
