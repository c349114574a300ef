// Package menu contains the menu Item entity. The orchestration core only
// reads the menu during admission control and lets staff flip availability;
// full menu editing lives in the surrounding CRUD layer.
package menu

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// the NewItem or RestoreItem factory methods.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is one orderable dish or drink. Availability is the only property the
// core mutates; order placement rejects any line referencing an unavailable
// or unknown item.
type Item struct {
	id         kernel.UUID
	name       string
	priceCents int64
	available  bool

	isConstructed bool
}

// NewItem creates a new available menu item.
func NewItem(id kernel.UUID, name string, priceCents int64) (*Item, error) {
	return RestoreItem(id, name, priceCents, true)
}

// RestoreItem reconstructs an Item from persistence.
func RestoreItem(id kernel.UUID, name string, priceCents int64, available bool) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if priceCents < 0 {
		return nil, errs.NewValueIsInvalidError("priceCents")
	}

	return &Item{
		id:            id,
		name:          name,
		priceCents:    priceCents,
		available:     available,
		isConstructed: true,
	}, nil
}

// Validate ensures the Item was created via a factory method.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// Name returns the item's display name.
func (i *Item) Name() string {
	return i.name
}

// PriceCents returns the item's price in cents.
func (i *Item) PriceCents() int64 {
	return i.priceCents
}

// Available reports whether the item may currently be ordered.
func (i *Item) Available() bool {
	return i.available
}

// SetAvailable flips the item's availability. Existing orders referencing the
// item are unaffected; availability is checked at placement time only.
func (i *Item) SetAvailable(available bool) {
	i.available = available
}
