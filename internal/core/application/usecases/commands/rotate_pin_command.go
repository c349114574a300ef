package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var ErrRotatePinCommandIsNotConstructed = errors.New(
	"RotatePinCommand must be created via NewRotatePinCommand constructor",
)

// RotatePinCommand represents a staff request to change a table's PIN.
// An explicit replacement PIN may be supplied; without one, a random PIN is
// generated at execution time.
type RotatePinCommand struct { //nolint:recvcheck //using for validation
	tableID kernel.UUID
	pin     *kernel.Pin

	guard guard.ConstructorGuard
}

// NewRotatePinCommand creates a command to rotate a table's PIN to a random
// value.
func NewRotatePinCommand(tableID kernel.UUID) (RotatePinCommand, error) {
	return newRotatePinCommand(tableID, nil)
}

// NewRotatePinCommandWithPin creates a command to set an explicit PIN.
func NewRotatePinCommandWithPin(tableID kernel.UUID, pin kernel.Pin) (RotatePinCommand, error) {
	if err := pin.Validate(); err != nil {
		return RotatePinCommand{}, err
	}
	return newRotatePinCommand(tableID, &pin)
}

func newRotatePinCommand(tableID kernel.UUID, pin *kernel.Pin) (RotatePinCommand, error) {
	cmd := RotatePinCommand{
		pin:   pin,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTableID(tableID); err != nil {
		return RotatePinCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c RotatePinCommand) Validate() error {
	return c.guard.Validate(ErrRotatePinCommandIsNotConstructed)
}

// TableID returns the identifier of the table whose PIN rotates.
func (c RotatePinCommand) TableID() kernel.UUID {
	return c.tableID
}

// Pin returns the explicit replacement PIN, or nil when a random one should
// be generated.
func (c RotatePinCommand) Pin() *kernel.Pin {
	return c.pin
}

func (c *RotatePinCommand) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	c.tableID = tableID
	return nil
}
