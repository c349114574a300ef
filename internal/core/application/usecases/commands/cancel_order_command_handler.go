package commands

import (
	"context"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/session"
	"tableside/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order, enforcing both the state
// machine (only queued or preparing orders are cancellable) and the actor's
// privilege:
//
//   - a customer may cancel only their own table's order, and only while it
//     is still queued; once the kitchen has started preparing, the customer
//     is rejected with ErrForbidden
//   - kitchen and manager actors may cancel from queued or preparing
//
// State errors take precedence over privilege errors: cancelling a ready or
// terminal order reports the state problem regardless of who asks, since it
// signals a stale client view that a refresh fixes.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancel command and returns the cancelled order.
// The order-cancelled event is published only after the transaction commits.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if _, err = ord.Status().Cancel(); err != nil {
		return nil, err
	}

	if err = h.checkPrivilege(cmd.Actor(), ord); err != nil {
		return nil, err
	}

	if err = ord.Cancel(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(events.OrderCancelled(
		ord.ID().String(),
		ord.TableID().String(),
		ord.Status().String(),
	))

	return ord, nil
}

func (h *CancelOrderCommandHandler) checkPrivilege(actor session.Session, ord *order.Order) error {
	if actor.Role().ActsAsKitchen() {
		return nil
	}

	// Customers: own table only, and only before the kitchen picks it up.
	if !actor.OwnsTable(ord.TableID()) {
		return ErrForbidden
	}
	if ord.Status() != order.Queued {
		return ErrForbidden
	}
	return nil
}
