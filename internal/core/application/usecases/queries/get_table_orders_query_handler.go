package queries

import (
	"context"
	"database/sql"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTableOrdersQueryHandler reads one table's orders from the database.
// Lines are joined in so the client renders each order completely without
// follow-up requests.
type GetTableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetTableOrdersQueryHandler creates a handler for table order queries.
func NewGetTableOrdersQueryHandler(db *gorm.DB) GetTableOrdersQueryHandler {
	return GetTableOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders come back newest first; lines keep the
// position order the guest submitted.
func (h GetTableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetTableOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.table_id,
			o.status,
			o.created_at,
			l.menu_item_id,
			l.quantity
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
		WHERE o.table_id = ?
		ORDER BY o.created_at DESC, o.id, l.line_no
	`, query.TableID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

// scanOrderRows folds the joined rows into OrderResponse values, one per
// distinct order id, preserving row order.
func scanOrderRows(rows *sql.Rows) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)
	var current *OrderResponse

	for rows.Next() {
		var (
			id         uuid.UUID
			tableID    uuid.UUID
			status     int
			createdAt  time.Time
			menuItemID *uuid.UUID
			quantity   *int
		)

		if err := rows.Scan(&id, &tableID, &status, &createdAt, &menuItemID, &quantity); err != nil {
			return nil, err
		}

		orderID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		if current == nil || !current.ID.IsEqual(orderID) {
			orderTableID, tErr := kernel.UUIDFromBytes(tableID[:])
			if tErr != nil {
				return nil, tErr
			}
			orders = append(orders, OrderResponse{
				ID:        orderID,
				TableID:   orderTableID,
				Status:    order.Status(status),
				CreatedAt: createdAt,
				Lines:     make([]OrderLineResponse, 0),
			})
			current = &orders[len(orders)-1]
		}

		if menuItemID != nil && quantity != nil {
			itemID, iErr := kernel.UUIDFromBytes(menuItemID[:])
			if iErr != nil {
				return nil, iErr
			}
			current.Lines = append(current.Lines, OrderLineResponse{
				MenuItemID: itemID,
				Quantity:   *quantity,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
