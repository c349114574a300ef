// Package orderrepo implements order persistence over GORM, mapping the
// order aggregate and its lines to the orders and order_lines tables.
package orderrepo

import (
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by table id for the per-table views and the capacity count.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TableID   uuid.UUID `gorm:"type:uuid;index"`
	Status    int       `gorm:"index"`
	CreatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents one order position. LineNo preserves the submission
// order of the lines within one order.
type LineDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineNo     int       `gorm:"primaryKey"`
	MenuItemID uuid.UUID `gorm:"type:uuid"`
	Quantity   int
}

// TableName specifies the database table name for order lines.
func (LineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) (OrderDTO, []LineDTO) {
	dto := OrderDTO{
		ID:        aggregate.ID().Bytes(),
		TableID:   aggregate.TableID().Bytes(),
		Status:    int(aggregate.Status()),
		CreatedAt: aggregate.CreatedAt(),
	}

	lines := make([]LineDTO, 0, len(aggregate.Lines()))
	for i, line := range aggregate.Lines() {
		lines = append(lines, LineDTO{
			OrderID:    dto.ID,
			LineNo:     i,
			MenuItemID: line.MenuItemID().Bytes(),
			Quantity:   line.Quantity(),
		})
	}

	return dto, lines
}

func toDomain(dto OrderDTO, lineDTOs []LineDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tableID, err := kernel.UUIDFromBytes(dto.TableID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(lineDTOs))
	for _, lineDTO := range lineDTOs {
		itemID, itemErr := kernel.UUIDFromBytes(lineDTO.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		line, lineErr := order.NewLine(itemID, lineDTO.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, tableID, lines, order.Status(dto.Status), dto.CreatedAt)
}
