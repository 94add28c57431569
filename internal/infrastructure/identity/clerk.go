package identity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
)

// ClerkIdentityProvider reads and writes driver roles in Clerk public
// metadata through the backend API.
type ClerkIdentityProvider struct {
	users *user.Client
}

// NewClerkIdentityProvider creates a provider backed by the given secret key
func NewClerkIdentityProvider(secretKey string) *ClerkIdentityProvider {
	cfg := &clerk.ClientConfig{}
	cfg.Key = clerk.String(secretKey)
	return &ClerkIdentityProvider{users: user.NewClient(cfg)}
}

// publicMetadata is the subset of Clerk public metadata this backend cares
// about. Unknown keys are preserved by Clerk's merge semantics on update.
type publicMetadata struct {
	Role string `json:"role"`
}

// GetUserRole returns the role stored in the user's public metadata, empty
// when none is set. Metadata that does not parse is treated as no role.
func (p *ClerkIdentityProvider) GetUserRole(ctx context.Context, userID string) (string, error) {
	u, err := p.users.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch clerk user %s: %w", userID, err)
	}

	if len(u.PublicMetadata) == 0 {
		return "", nil
	}

	var meta publicMetadata
	if err := json.Unmarshal(u.PublicMetadata, &meta); err != nil {
		return "", nil
	}
	return meta.Role, nil
}

// SetUserRole merges the role into the user's public metadata and returns
// the stored value
func (p *ClerkIdentityProvider) SetUserRole(ctx context.Context, userID, role string) (string, error) {
	raw, err := json.Marshal(publicMetadata{Role: role})
	if err != nil {
		return "", err
	}

	meta := json.RawMessage(raw)
	if _, err := p.users.UpdateMetadata(ctx, userID, &user.UpdateMetadataParams{
		PublicMetadata: &meta,
	}); err != nil {
		return "", fmt.Errorf("failed to update clerk metadata for %s: %w", userID, err)
	}
	return role, nil
}
