package commands

import (
	"context"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/ports"
)

// DeleteTableCommandHandler removes a table. Sessions bound to the table die
// on their next validity check because the lookup no longer finds the table;
// the table-deleted event published after commit ejects connected clients
// right away.
type DeleteTableCommandHandler struct {
	uowFactory TableUoWFactory
	publisher  ports.EventPublisher
}

// NewDeleteTableCommandHandler creates a handler for table removal.
func NewDeleteTableCommandHandler(uowFactory TableUoWFactory, publisher ports.EventPublisher) DeleteTableCommandHandler {
	return DeleteTableCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the removal.
func (h *DeleteTableCommandHandler) Handle(ctx context.Context, cmd DeleteTableCommand) error {
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

	tableRepo := uow.TableRepository()

	// Confirm existence first so callers get a not-found error instead of a
	// silent no-op delete.
	tbl, err := tableRepo.Get(ctx, cmd.TableID())
	if err != nil {
		return err
	}

	if err = tableRepo.Delete(ctx, tbl.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(events.TableDeleted(tbl.ID().String()))

	return nil
}
