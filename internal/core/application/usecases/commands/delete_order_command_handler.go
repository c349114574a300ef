package commands

import (
	"context"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/ports"
)

// DeleteOrderCommandHandler permanently removes a finished order.
// Only manager-privileged actors may delete, and only orders whose status is
// terminal (delivered or cancelled); anything still in the pipeline must be
// cancelled first.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewDeleteOrderCommandHandler creates a handler for hard order deletion.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the delete command. Returns ErrForbidden for non-manager
// actors and ErrOrderNotDeletable for non-terminal orders.
// The order-deleted event is published only after the transaction commits.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().Role().ActsAsManager() {
		return ErrForbidden
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !ord.Status().IsTerminal() {
		return ErrOrderNotDeletable
	}

	if err = orderRepo.Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(events.OrderDeleted(
		ord.ID().String(),
		ord.TableID().String(),
	))

	return nil
}
