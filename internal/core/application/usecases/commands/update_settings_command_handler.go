package commands

import (
	"context"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/ports"
)

// UpdateSettingsCommandHandler replaces the admission limits. Already-placed
// orders are unaffected; only subsequent placement attempts see the new
// limits.
type UpdateSettingsCommandHandler struct {
	uowFactory SettingsUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateSettingsCommandHandler creates a handler for settings updates.
func NewUpdateSettingsCommandHandler(
	uowFactory SettingsUoWFactory,
	publisher ports.EventPublisher,
) UpdateSettingsCommandHandler {
	return UpdateSettingsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the settings update.
func (h *UpdateSettingsCommandHandler) Handle(ctx context.Context, cmd UpdateSettingsCommand) error {
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

	if err := uow.SettingsRepository().Save(ctx, cmd.Settings()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(events.SettingsChanged())

	return nil
}
