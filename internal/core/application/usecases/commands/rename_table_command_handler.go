package commands

import (
	"context"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/ports"
)

// RenameTableCommandHandler changes a table's label. The PIN and its version
// are untouched, so existing sessions stay valid.
type RenameTableCommandHandler struct {
	uowFactory TableUoWFactory
	publisher  ports.EventPublisher
}

// NewRenameTableCommandHandler creates a handler for table renames.
func NewRenameTableCommandHandler(uowFactory TableUoWFactory, publisher ports.EventPublisher) RenameTableCommandHandler {
	return RenameTableCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the rename.
func (h *RenameTableCommandHandler) Handle(ctx context.Context, cmd RenameTableCommand) error {
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
	tbl, err := tableRepo.Get(ctx, cmd.TableID())
	if err != nil {
		return err
	}

	if err = tbl.Rename(cmd.Label()); err != nil {
		return err
	}

	if err = tableRepo.Update(ctx, tbl); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(events.TableUpdated(tbl.ID().String()))

	return nil
}
