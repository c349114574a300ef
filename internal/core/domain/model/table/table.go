package table

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

var (
	// ErrTableIsNotConstructed is returned when a Table instance was not created
	// through the NewTable or RestoreTable factory methods.
	ErrTableIsNotConstructed = errors.New("Table must be created via NewTable or RestoreTable")

	// ErrLabelIsRequired is returned when a table label is empty.
	ErrLabelIsRequired = errs.NewValueIsRequiredError("label")
)

// Table represents one physical table guests can sit at. It is the aggregate
// root for the table's access state: the current four-digit PIN and the
// monotonic PIN version.
//
// Table follows these invariants:
//   - Must have a valid unique identifier and a non-empty display label
//   - The PIN is always exactly four digits (enforced by kernel.Pin)
//   - PinVersion starts at 1 and increments on every PIN change; a version
//     number is never reused, so a customer session that snapshotted an older
//     version can always be detected as stale
type Table struct {
	// id is the unique identifier for the table
	id kernel.UUID

	// label is the display name shown to staff and on printed QR cards
	label string

	// pin is the current access code guests must supply to open a session
	pin kernel.Pin

	// pinVersion is incremented on every PIN change and never reused
	pinVersion int64

	// isConstructed ensures the table was created via a factory method
	isConstructed bool
}

// NewTable creates a new Table with PIN version 1.
//
// Parameters:
//   - id: Unique identifier for the table (must be valid UUID)
//   - label: Display name (must be non-empty)
//   - pin: Initial access code (must be a constructed kernel.Pin)
func NewTable(id kernel.UUID, label string, pin kernel.Pin) (*Table, error) {
	return newTable(id, label, pin, 1)
}

// RestoreTable reconstructs a Table from persistence with an explicit PIN
// version. Used by repository implementations only.
func RestoreTable(id kernel.UUID, label string, pin kernel.Pin, pinVersion int64) (*Table, error) {
	if pinVersion < 1 {
		return nil, errs.NewValueIsInvalidError("pinVersion")
	}
	return newTable(id, label, pin, pinVersion)
}

func newTable(id kernel.UUID, label string, pin kernel.Pin, pinVersion int64) (*Table, error) {
	table := &Table{
		pinVersion:    pinVersion,
		isConstructed: true,
	}

	if err := errors.Join(
		table.setID(id),
		table.setLabel(label),
		table.setPin(pin),
	); err != nil {
		return nil, err
	}

	return table, nil
}

// Validate ensures the Table instance was properly constructed.
func (t *Table) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTableIsNotConstructed
	}

	return nil
}

// IsEqual compares two tables by their unique identifiers.
func (t *Table) IsEqual(other *Table) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the table's unique identifier.
func (t *Table) ID() kernel.UUID {
	return t.id
}

// Label returns the table's display name.
func (t *Table) Label() string {
	return t.label
}

// Pin returns the current access code.
func (t *Table) Pin() kernel.Pin {
	return t.pin
}

// PinVersion returns the current PIN version. Customer sessions snapshot this
// value at authentication time; a mismatch on a later check means the session
// has been revoked by a PIN rotation.
func (t *Table) PinVersion() int64 {
	return t.pinVersion
}

// Rename changes the table's display label.
func (t *Table) Rename(label string) error {
	return t.setLabel(label)
}

// RotatePin replaces the access code and increments the PIN version.
// Returns the new version. Every customer session holding the previous
// version becomes invalid; invalidation is lazy - the stored sessions are not
// touched, the version comparison at validation time catches them.
func (t *Table) RotatePin(pin kernel.Pin) (int64, error) {
	if err := t.setPin(pin); err != nil {
		return 0, err
	}

	t.pinVersion++
	return t.pinVersion, nil
}

func (t *Table) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Table) setLabel(label string) error {
	if label == "" {
		return ErrLabelIsRequired
	}
	t.label = label
	return nil
}

func (t *Table) setPin(pin kernel.Pin) error {
	if err := pin.Validate(); err != nil {
		return err
	}
	t.pin = pin
	return nil
}
