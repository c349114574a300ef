package commands

import (
	"errors"
	"fmt"
	"strings"

	"tableside/internal/core/domain/model/kernel"
)

var (
	// ErrOrderTooLarge rejects a placement whose summed quantities exceed the
	// max-items-per-order limit. Expected, user-facing; never logged as a failure.
	ErrOrderTooLarge = errors.New("order exceeds the maximum item count")

	// ErrTableAtCapacity rejects a placement when the table already has the
	// maximum number of active (queued or preparing) orders.
	ErrTableAtCapacity = errors.New("table already has the maximum number of active orders")

	// ErrItemsUnavailable is the unwrap target for ItemsUnavailableError.
	ErrItemsUnavailable = errors.New("order references unavailable menu items")

	// ErrForbidden rejects an operation the actor's role does not permit.
	ErrForbidden = errors.New("actor is not permitted to perform this operation")

	// ErrOrderNotDeletable rejects hard deletion of an order that is not yet
	// in a terminal status.
	ErrOrderNotDeletable = errors.New("only delivered or cancelled orders can be deleted")
)

// ItemsUnavailableError rejects a placement referencing unknown or currently
// unavailable menu items. It carries every offending id so the client can
// render a complete message; the order is never partially created.
type ItemsUnavailableError struct {
	ItemIDs []kernel.UUID
}

func (e *ItemsUnavailableError) Error() string {
	ids := make([]string, len(e.ItemIDs))
	for i, id := range e.ItemIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%s: %s", ErrItemsUnavailable, strings.Join(ids, ", "))
}

func (e *ItemsUnavailableError) Unwrap() error {
	return ErrItemsUnavailable
}
