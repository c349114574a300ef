package commands

import (
	"context"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/core/ports"
)

// AddTableCommandHandler registers a new table with a random initial PIN.
// The created aggregate is returned so staff can see the PIN once; it is
// never readable again except through rotation.
type AddTableCommandHandler struct {
	uowFactory TableUoWFactory
	publisher  ports.EventPublisher
}

// NewAddTableCommandHandler creates a handler for table registration.
func NewAddTableCommandHandler(uowFactory TableUoWFactory, publisher ports.EventPublisher) AddTableCommandHandler {
	return AddTableCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the registration and returns the new table.
func (h *AddTableCommandHandler) Handle(ctx context.Context, cmd AddTableCommand) (*table.Table, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tbl, err := table.NewTable(cmd.TableID(), cmd.Label(), kernel.NewRandomPin())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TableRepository().Add(ctx, tbl); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(events.TableAdded(tbl.ID().String()))

	return tbl, nil
}
