package ports

import (
	"context"

	"tableside/internal/core/domain/model/settings"
)

// SettingsRepository defines the persistence contract for the single
// admission-control settings row.
type SettingsRepository interface {
	// Get retrieves the current limits. Returns settings.DefaultSettings()
	// when staff have never saved any.
	Get(ctx context.Context) (settings.Settings, error)

	// Save upserts the limits.
	Save(ctx context.Context, s settings.Settings) error
}
