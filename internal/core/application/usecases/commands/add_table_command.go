package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/pkg/guard"
)

var ErrAddTableCommandIsNotConstructed = errors.New(
	"AddTableCommand must be created via NewAddTableCommand constructor",
)

// AddTableCommand represents a staff request to register a new table.
// The table receives a random initial PIN.
type AddTableCommand struct { //nolint:recvcheck //using for validation
	tableID kernel.UUID
	label   string

	guard guard.ConstructorGuard
}

// NewAddTableCommand creates a command to register a table.
func NewAddTableCommand(tableID kernel.UUID, label string) (AddTableCommand, error) {
	cmd := AddTableCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTableID(tableID),
		cmd.setLabel(label),
	); err != nil {
		return AddTableCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddTableCommand) Validate() error {
	return c.guard.Validate(ErrAddTableCommandIsNotConstructed)
}

// TableID returns the identifier for the new table.
func (c AddTableCommand) TableID() kernel.UUID {
	return c.tableID
}

// Label returns the display name for the new table.
func (c AddTableCommand) Label() string {
	return c.label
}

func (c *AddTableCommand) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	c.tableID = tableID
	return nil
}

func (c *AddTableCommand) setLabel(label string) error {
	if label == "" {
		return table.ErrLabelIsRequired
	}
	c.label = label
	return nil
}
