package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var ErrDeleteTableCommandIsNotConstructed = errors.New(
	"DeleteTableCommand must be created via NewDeleteTableCommand constructor",
)

// DeleteTableCommand represents a staff request to remove a table.
type DeleteTableCommand struct { //nolint:recvcheck //using for validation
	tableID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteTableCommand creates a command to remove a table.
func NewDeleteTableCommand(tableID kernel.UUID) (DeleteTableCommand, error) {
	cmd := DeleteTableCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTableID(tableID); err != nil {
		return DeleteTableCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteTableCommand) Validate() error {
	return c.guard.Validate(ErrDeleteTableCommandIsNotConstructed)
}

// TableID returns the identifier of the table to remove.
func (c DeleteTableCommand) TableID() kernel.UUID {
	return c.tableID
}

func (c *DeleteTableCommand) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	c.tableID = tableID
	return nil
}
