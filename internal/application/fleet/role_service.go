package fleet

import (
	"context"

	"github.com/courierlog/backend/internal/domain/shared"
)

// Role assignment statuses returned to the client.
const (
	RoleStatusUpdated   = "updated"
	RoleStatusUnchanged = "unchanged"
)

// DefaultRole is written to users that carry no role yet.
const DefaultRole = "driver"

// IdentityProvider is the slice of the hosted identity service this module
// needs: reading and writing the role stored in a user's public metadata.
type IdentityProvider interface {
	// GetUserRole returns the role from the user's public metadata, empty
	// when none is set.
	GetUserRole(ctx context.Context, userID string) (string, error)

	// SetUserRole writes the role into the user's public metadata and
	// returns the stored value.
	SetUserRole(ctx context.Context, userID, role string) (string, error)
}

// RoleAssignmentResponse reports the role now present on the user.
type RoleAssignmentResponse struct {
	Status string `json:"status"`
	Role   string `json:"role"`
}

// RoleService assigns the default driver role on session bootstrap. The
// write is guarded by a single existence check: a user that already carries
// any role is left untouched.
type RoleService struct {
	provider IdentityProvider
}

// NewRoleService creates a new RoleService
func NewRoleService(provider IdentityProvider) *RoleService {
	return &RoleService{provider: provider}
}

// EnsureDriverRole is idempotent: repeated calls for the same user settle on
// "unchanged" once a role exists.
func (s *RoleService) EnsureDriverRole(ctx context.Context, clerkUserID string) (*RoleAssignmentResponse, error) {
	if clerkUserID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Missing clerk_user_id")
	}

	current, err := s.provider.GetUserRole(ctx, clerkUserID)
	if err != nil {
		return nil, err
	}
	if current != "" {
		return &RoleAssignmentResponse{Status: RoleStatusUnchanged, Role: current}, nil
	}

	role, err := s.provider.SetUserRole(ctx, clerkUserID, DefaultRole)
	if err != nil {
		return nil, err
	}
	return &RoleAssignmentResponse{Status: RoleStatusUpdated, Role: role}, nil
}
