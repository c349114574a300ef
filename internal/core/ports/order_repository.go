package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status change to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and takes a row-level write lock on it
	// for the duration of the surrounding transaction. Two concurrent status
	// transitions on the same order serialize here; the second caller observes
	// the first one's committed status.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete permanently removes an order and its lines. Hard deletion, not a
	// status transition; callers enforce that only terminal orders qualify.
	Delete(ctx context.Context, id kernel.UUID) error

	// CountActiveForTable counts the table's orders in Queued or Preparing
	// status. Inside a serializable transaction this is the admission-control
	// capacity read.
	CountActiveForTable(ctx context.Context, tableID kernel.UUID) (int, error)

	// GetAllForTable retrieves the table's orders, newest first.
	GetAllForTable(ctx context.Context, tableID kernel.UUID) ([]*order.Order, error)
}
