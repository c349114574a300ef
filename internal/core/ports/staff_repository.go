package ports

import (
	"context"

	"tableside/internal/core/domain/model/session"
)

// StaffCredential is a staff role's stored login secret. PasswordHash is a
// bcrypt hash; the plaintext never touches persistence.
type StaffCredential struct {
	Role         session.Role
	PasswordHash string
}

// StaffRepository defines read access to the staff credential store.
// Credentials are provisioned out of band; the core only verifies them.
type StaffRepository interface {
	// GetCredential retrieves the stored credential for a staff role.
	GetCredential(ctx context.Context, role session.Role) (StaffCredential, error)
}
