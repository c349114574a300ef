package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
)

// TableRepository defines the persistence contract for table aggregates.
type TableRepository interface {
	// Add persists a new table aggregate.
	Add(ctx context.Context, aggregate *table.Table) error

	// Update persists label or PIN changes to an existing table.
	Update(ctx context.Context, aggregate *table.Table) error

	// Get retrieves a table aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*table.Table, error)

	// Delete permanently removes a table. Sessions bound to it become invalid
	// lazily: the existence check in session validation catches them.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetAll retrieves every table, ordered by label.
	GetAll(ctx context.Context) ([]*table.Table, error)
}
