package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
)

// MenuRepository defines the persistence contract for menu items.
type MenuRepository interface {
	// Add persists a new menu item.
	Add(ctx context.Context, item *menu.Item) error

	// Update persists changes (availability included) to an existing item.
	Update(ctx context.Context, item *menu.Item) error

	// Get retrieves a menu item by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*menu.Item, error)

	// GetByIDs retrieves the items for the given identifiers. Unknown ids are
	// simply absent from the result; admission control treats absence the same
	// as unavailability.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*menu.Item, error)

	// GetAll retrieves every menu item, ordered by name.
	GetAll(ctx context.Context) ([]*menu.Item, error)
}
