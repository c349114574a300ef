package commands

import (
	"context"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/ports"
)

// SetMenuItemAvailabilityCommandHandler toggles whether a menu item can be
// ordered. Orders already placed for the item keep their lines; availability
// only gates admission of new orders.
type SetMenuItemAvailabilityCommandHandler struct {
	uowFactory MenuUoWFactory
	publisher  ports.EventPublisher
}

// NewSetMenuItemAvailabilityCommandHandler creates a handler for availability toggles.
func NewSetMenuItemAvailabilityCommandHandler(
	uowFactory MenuUoWFactory,
	publisher ports.EventPublisher,
) SetMenuItemAvailabilityCommandHandler {
	return SetMenuItemAvailabilityCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the availability change.
func (h *SetMenuItemAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetMenuItemAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	menuRepo := uow.MenuRepository()
	item, err := menuRepo.Get(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	item.SetAvailable(cmd.Available())

	if err = menuRepo.Update(ctx, item); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(events.MenuChanged())

	return nil
}
