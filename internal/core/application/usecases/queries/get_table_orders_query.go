// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain model and read straight from the
// database, returning response structs shaped for the client.
package queries

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/guard"
)

var ErrGetTableOrdersQueryIsNotConstructed = errors.New(
	"GetTableOrdersQuery must be created via NewGetTableOrdersQuery constructor",
)

// GetTableOrdersQuery retrieves every order of one table, newest first.
// This is the customer-facing view: guests watch their own orders move
// through the pipeline.
type GetTableOrdersQuery struct { //nolint:recvcheck //using for validation
	tableID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTableOrdersQuery creates a query for a table's orders.
func NewGetTableOrdersQuery(tableID kernel.UUID) (GetTableOrdersQuery, error) {
	q := GetTableOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setTableID(tableID); err != nil {
		return GetTableOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetTableOrdersQueryIsNotConstructed)
}

// TableID returns the table whose orders are requested.
func (q GetTableOrdersQuery) TableID() kernel.UUID {
	return q.tableID
}

func (q *GetTableOrdersQuery) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	q.tableID = tableID
	return nil
}

// OrderLineResponse is one (menu item, quantity) position of an order.
type OrderLineResponse struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// OrderResponse represents one order in a query result.
type OrderResponse struct {
	ID        kernel.UUID
	TableID   kernel.UUID
	Status    order.Status
	CreatedAt time.Time
	Lines     []OrderLineResponse
}
