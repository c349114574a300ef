// Package tablerepo implements table persistence over GORM.
package tablerepo

import (
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"

	"github.com/google/uuid"
)

// TableDTO represents the database structure for persisting table aggregates.
// The PIN is stored in clear: it is a low-entropy convenience secret printed
// on the physical table, not a password, and staff must be able to read it
// back for reprints.
type TableDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Label      string
	Pin        string
	PinVersion int64
}

// TableName specifies the database table name for table entities.
func (TableDTO) TableName() string {
	return "tables"
}

func fromDomain(aggregate *table.Table) TableDTO {
	return TableDTO{
		ID:         aggregate.ID().Bytes(),
		Label:      aggregate.Label(),
		Pin:        aggregate.Pin().String(),
		PinVersion: aggregate.PinVersion(),
	}
}

func toDomain(dto TableDTO) (*table.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pin, err := kernel.NewPin(dto.Pin)
	if err != nil {
		return nil, err
	}

	return table.RestoreTable(id, dto.Label, pin, dto.PinVersion)
}
