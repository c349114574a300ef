package commands

import (
	"context"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/ports"
)

// AdvanceOrderCommandHandler moves an order to its unique successor status
// (Queued -> Preparing -> Ready -> Delivered). The order row is locked for
// the duration of the transaction, so two concurrent advances on the same
// order serialize and cannot both succeed against the same starting status.
// Advancing a terminal order returns order.ErrAlreadyTerminal and never
// mutates state.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewAdvanceOrderCommandHandler creates a handler for stage advancement.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the advance command and returns the updated order.
// The order-updated event is published only after the transaction commits.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if _, err = ord.Advance(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(events.OrderUpdated(
		ord.ID().String(),
		ord.TableID().String(),
		ord.Status().String(),
	))

	return ord, nil
}
