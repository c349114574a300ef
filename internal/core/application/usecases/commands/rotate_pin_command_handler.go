package commands

import (
	"context"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/ports"
)

// RotatePinResult carries the outcome of a PIN rotation back to the staff UI:
// the new PIN (to print or display) and the new version.
type RotatePinResult struct {
	Pin        kernel.Pin
	PinVersion int64
}

// RotatePinCommandHandler changes a table's PIN and bumps its PIN version.
// Every outstanding customer session for the table becomes invalid through
// the version comparison at its next validity check; no session storage is
// touched here. The pin-changed event published after commit ejects currently
// connected clients proactively instead of leaving them to discover the
// revocation later.
type RotatePinCommandHandler struct {
	uowFactory TableUoWFactory
	publisher  ports.EventPublisher
}

// NewRotatePinCommandHandler creates a handler for PIN rotation.
func NewRotatePinCommandHandler(uowFactory TableUoWFactory, publisher ports.EventPublisher) RotatePinCommandHandler {
	return RotatePinCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the rotation and returns the new PIN and version.
func (h *RotatePinCommandHandler) Handle(ctx context.Context, cmd RotatePinCommand) (RotatePinResult, error) {
	if err := cmd.Validate(); err != nil {
		return RotatePinResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RotatePinResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tableRepo := uow.TableRepository()
	tbl, err := tableRepo.Get(ctx, cmd.TableID())
	if err != nil {
		return RotatePinResult{}, err
	}

	newPin := kernel.NewRandomPin()
	if cmd.Pin() != nil {
		newPin = *cmd.Pin()
	}

	version, err := tbl.RotatePin(newPin)
	if err != nil {
		return RotatePinResult{}, err
	}

	if err = tableRepo.Update(ctx, tbl); err != nil {
		return RotatePinResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RotatePinResult{}, err
	}

	h.publisher.Publish(events.PinChanged(tbl.ID().String(), version))

	return RotatePinResult{Pin: newPin, PinVersion: version}, nil
}
