// Package staffrepo implements read access to staff credentials. Rows are
// provisioned out of band; the application only ever verifies against them.
package staffrepo

import (
	"context"
	"errors"

	"tableside/internal/core/domain/model/session"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"

	"gorm.io/gorm"
)

// CredentialDTO represents the database structure for staff credentials,
// one row per role. PasswordHash is a bcrypt hash.
type CredentialDTO struct {
	Role         string `gorm:"primaryKey"`
	PasswordHash string
}

// TableName specifies the database table name for staff credentials.
func (CredentialDTO) TableName() string {
	return "staff_credentials"
}

// GormStaffRepository implements StaffRepository using GORM.
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GORM staff repository.
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// GetCredential retrieves the stored credential for a staff role.
func (r *GormStaffRepository) GetCredential(ctx context.Context, role session.Role) (ports.StaffCredential, error) {
	if err := role.Validate(); err != nil {
		return ports.StaffCredential{}, err
	}

	var dto CredentialDTO
	if err := r.db.WithContext(ctx).First(&dto, "role = ?", role.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.StaffCredential{}, errs.NewObjectNotFoundError("staff credential", role.String())
		}
		return ports.StaffCredential{}, err
	}

	return ports.StaffCredential{
		Role:         role,
		PasswordHash: dto.PasswordHash,
	}, nil
}
