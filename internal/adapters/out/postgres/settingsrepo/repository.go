// Package settingsrepo implements persistence for the single
// admission-control settings row.
package settingsrepo

import (
	"context"
	"errors"

	"tableside/internal/core/domain/model/settings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsRowID pins the table to exactly one row.
const settingsRowID = 1

// SettingsDTO represents the database structure for the settings singleton.
type SettingsDTO struct {
	ID                      int `gorm:"primaryKey"`
	MaxItemsPerOrder        int
	MaxActiveOrdersPerTable int
}

// TableName specifies the database table name for settings.
func (SettingsDTO) TableName() string {
	return "settings"
}

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get retrieves the current limits, falling back to the defaults when staff
// have never saved any.
func (r *GormSettingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	var dto SettingsDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", settingsRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings.DefaultSettings(), nil
		}
		return settings.Settings{}, err
	}

	return settings.NewSettings(dto.MaxItemsPerOrder, dto.MaxActiveOrdersPerTable)
}

// Save upserts the limits.
func (r *GormSettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := SettingsDTO{
		ID:                      settingsRowID,
		MaxItemsPerOrder:        s.MaxItemsPerOrder(),
		MaxActiveOrdersPerTable: s.MaxActiveOrdersPerTable(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
