// Package settings contains the two scalar admission-control limits. Staff
// mutate them; the order placement gate reads them on every attempt.
package settings

import (
	"errors"

	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

// ErrSettingsAreNotConstructed is returned when a Settings value was not
// created through the NewSettings factory method.
var ErrSettingsAreNotConstructed = errors.New("Settings must be created via NewSettings")

// Default limits applied when no settings row exists yet.
const (
	DefaultMaxItemsPerOrder        = 20
	DefaultMaxActiveOrdersPerTable = 3
)

// Settings holds the admission-control limits: the maximum summed quantity a
// single order may carry and the maximum number of simultaneously active
// (queued or preparing) orders per table. Immutable value object.
type Settings struct { //nolint:recvcheck //using for validation
	maxItemsPerOrder        int
	maxActiveOrdersPerTable int

	guard guard.ConstructorGuard
}

// NewSettings creates a Settings value. Both limits must be at least 1.
func NewSettings(maxItemsPerOrder, maxActiveOrdersPerTable int) (Settings, error) {
	s := Settings{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setMaxItemsPerOrder(maxItemsPerOrder),
		s.setMaxActiveOrdersPerTable(maxActiveOrdersPerTable),
	); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// DefaultSettings returns the limits used before staff ever touch them.
func DefaultSettings() Settings {
	s, _ := NewSettings(DefaultMaxItemsPerOrder, DefaultMaxActiveOrdersPerTable)
	return s
}

// Validate ensures the Settings value was created via NewSettings.
func (s Settings) Validate() error {
	return s.guard.Validate(ErrSettingsAreNotConstructed)
}

// MaxItemsPerOrder returns the maximum summed line quantity per order.
func (s Settings) MaxItemsPerOrder() int {
	return s.maxItemsPerOrder
}

// MaxActiveOrdersPerTable returns the maximum number of queued or preparing
// orders one table may have at once.
func (s Settings) MaxActiveOrdersPerTable() int {
	return s.maxActiveOrdersPerTable
}

func (s *Settings) setMaxItemsPerOrder(limit int) error {
	if limit < 1 {
		return errs.NewValueIsInvalidError("maxItemsPerOrder")
	}
	s.maxItemsPerOrder = limit
	return nil
}

func (s *Settings) setMaxActiveOrdersPerTable(limit int) error {
	if limit < 1 {
		return errs.NewValueIsInvalidError("maxActiveOrdersPerTable")
	}
	s.maxActiveOrdersPerTable = limit
	return nil
}
