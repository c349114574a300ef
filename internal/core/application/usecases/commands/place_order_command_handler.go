package commands

import (
	"context"
	"time"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// It runs the admission-control checks - item count against the
// max-items-per-order limit, menu availability of every referenced item, and
// the table's active-order capacity - and inserts the order rows, all inside
// one serializable transaction. Under concurrent placement from the same
// table the capacity count therefore only ever reflects committed prior
// orders; two near-simultaneous placements cannot both pass the check.
//
// A serialization conflict surfaces as a plain error and is never retried
// here: retrying a placement risks duplicate orders, so the caller must
// resubmit.
type PlaceOrderCommandHandler struct {
	uowFactory PlaceOrderUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// now supplies placement timestamps; pass time.Now outside tests.
func NewPlaceOrderCommandHandler(
	uowFactory PlaceOrderUoWFactory,
	publisher ports.EventPublisher,
	now func() time.Time,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        now,
	}
}

// Handle processes the placement command. Returns the created order, or one
// of ErrOrderTooLarge, ErrTableAtCapacity, *ItemsUnavailableError, a
// not-found error for the table, or an infrastructure error.
// The order-created event is published only after the transaction commits.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.BeginSerializable(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.TableRepository().Get(ctx, cmd.TableID()); err != nil {
		return nil, err
	}

	limits, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	itemCount := 0
	for _, line := range cmd.Lines() {
		itemCount += line.Quantity()
	}
	if itemCount > limits.MaxItemsPerOrder() {
		return nil, ErrOrderTooLarge
	}

	active, err := uow.OrderRepository().CountActiveForTable(ctx, cmd.TableID())
	if err != nil {
		return nil, err
	}
	if active >= limits.MaxActiveOrdersPerTable() {
		return nil, ErrTableAtCapacity
	}

	if err = h.checkAvailability(ctx, uow, cmd.Lines()); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.TableID(), cmd.Lines(), h.now())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(events.OrderCreated(
		newOrder.ID().String(),
		newOrder.TableID().String(),
		newOrder.Status().String(),
	))

	return newOrder, nil
}

// checkAvailability verifies that every referenced menu item exists and is
// currently available. All offending ids are collected so the rejection can
// name them; a partially valid order is never created.
func (h *PlaceOrderCommandHandler) checkAvailability(ctx context.Context, uow PlaceOrderUoW, lines []order.Line) error {
	ids := make([]kernel.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.MenuItemID()
	}

	items, err := uow.MenuRepository().GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	available := make(map[string]bool, len(items))
	for _, item := range items {
		available[item.ID().String()] = item.Available()
	}

	var offending []kernel.UUID
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id.String()] {
			continue
		}
		seen[id.String()] = true
		if !available[id.String()] {
			offending = append(offending, id)
		}
	}

	if len(offending) > 0 {
		return &ItemsUnavailableError{ItemIDs: offending}
	}
	return nil
}
