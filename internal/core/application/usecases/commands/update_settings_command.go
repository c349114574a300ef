package commands

import (
	"errors"

	"tableside/internal/core/domain/model/settings"
	"tableside/internal/pkg/guard"
)

var ErrUpdateSettingsCommandIsNotConstructed = errors.New(
	"UpdateSettingsCommand must be created via NewUpdateSettingsCommand constructor",
)

// UpdateSettingsCommand represents a manager request to change the admission
// limits for new orders.
type UpdateSettingsCommand struct { //nolint:recvcheck //using for validation
	settings settings.Settings

	guard guard.ConstructorGuard
}

// NewUpdateSettingsCommand creates a command to replace the admission limits.
// Validation of the limits happens in the settings value object.
func NewUpdateSettingsCommand(maxItemsPerOrder, maxActiveOrdersPerTable int) (UpdateSettingsCommand, error) {
	s, err := settings.NewSettings(maxItemsPerOrder, maxActiveOrdersPerTable)
	if err != nil {
		return UpdateSettingsCommand{}, err
	}

	return UpdateSettingsCommand{
		settings: s,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateSettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSettingsCommandIsNotConstructed)
}

// Settings returns the new admission limits.
func (c UpdateSettingsCommand) Settings() settings.Settings {
	return c.settings
}
