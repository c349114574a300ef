package order

import (
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when a Line was not created through the
// NewLine factory method.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// ErrQuantityIsInvalid is returned when a line quantity is below 1.
var ErrQuantityIsInvalid = errors.New("quantity must be at least 1")

// Line is one position of an order: a menu item reference and how many of it
// were requested. Lines are immutable value objects; their item references
// were checked against the live menu when the order was placed and are never
// re-validated afterwards.
type Line struct { //nolint:recvcheck //using for validation
	menuItemID kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewLine creates a Line with the given menu item reference and quantity.
// Quantity must be at least 1.
func NewLine(menuItemID kernel.UUID, quantity int) (Line, error) {
	line := Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setMenuItemID(menuItemID),
		line.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// Validate ensures the Line was created via NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// MenuItemID returns the referenced menu item's identifier.
func (l Line) MenuItemID() kernel.UUID {
	return l.menuItemID
}

// Quantity returns how many units of the item were requested.
func (l Line) Quantity() int {
	return l.quantity
}

func (l *Line) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	l.menuItemID = menuItemID
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrQuantityIsInvalid, quantity)
	}
	l.quantity = quantity
	return nil
}
