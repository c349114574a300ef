package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/pkg/guard"
)

var ErrRenameTableCommandIsNotConstructed = errors.New(
	"RenameTableCommand must be created via NewRenameTableCommand constructor",
)

// RenameTableCommand represents a staff request to change a table's label.
type RenameTableCommand struct { //nolint:recvcheck //using for validation
	tableID kernel.UUID
	label   string

	guard guard.ConstructorGuard
}

// NewRenameTableCommand creates a command to rename a table.
func NewRenameTableCommand(tableID kernel.UUID, label string) (RenameTableCommand, error) {
	cmd := RenameTableCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTableID(tableID),
		cmd.setLabel(label),
	); err != nil {
		return RenameTableCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RenameTableCommand) Validate() error {
	return c.guard.Validate(ErrRenameTableCommandIsNotConstructed)
}

// TableID returns the identifier of the table to rename.
func (c RenameTableCommand) TableID() kernel.UUID {
	return c.tableID
}

// Label returns the new display name.
func (c RenameTableCommand) Label() string {
	return c.label
}

func (c *RenameTableCommand) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	c.tableID = tableID
	return nil
}

func (c *RenameTableCommand) setLabel(label string) error {
	if label == "" {
		return table.ErrLabelIsRequired
	}
	c.label = label
	return nil
}
