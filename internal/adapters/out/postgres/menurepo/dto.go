// Package menurepo implements menu item persistence over GORM.
package menurepo

import (
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

// ItemDTO represents the database structure for persisting menu items.
type ItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	PriceCents int64
	Available  bool
}

// TableName specifies the database table name for menu items.
func (ItemDTO) TableName() string {
	return "menu_items"
}

func fromDomain(item *menu.Item) ItemDTO {
	return ItemDTO{
		ID:         item.ID().Bytes(),
		Name:       item.Name(),
		PriceCents: item.PriceCents(),
		Available:  item.Available(),
	}
}

func toDomain(dto ItemDTO) (*menu.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return menu.RestoreItem(id, dto.Name, dto.PriceCents, dto.Available)
}
