package order

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrLinesAreRequired is returned when an order is created without a single line.
	ErrLinesAreRequired = errors.New("order must contain at least one line")
)

// Order represents one table's food order. It is the aggregate root that
// manages the fulfillment lifecycle from placement through delivery or
// cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and table reference
//   - Must carry at least one line, each with quantity >= 1
//   - Status transitions follow the pipeline defined by Status
//   - Can only be created through NewOrder or RestoreOrder
//
// The line items were validated against the live menu at placement time only;
// later menu changes do not retroactively invalidate an existing order.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// tableID references the table the order belongs to
	tableID kernel.UUID

	// lines is the ordered sequence of (menu item, quantity) positions
	lines []Line

	// status represents the current state in the fulfillment pipeline
	status Status

	// createdAt is the placement timestamp
	createdAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in Queued status.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - tableID: The owning table's identifier (must be valid UUID)
//   - lines: At least one validated Line
//   - createdAt: Placement timestamp (must not be zero)
//
// Returns a validation error if any parameter is invalid.
func NewOrder(id kernel.UUID, tableID kernel.UUID, lines []Line, createdAt time.Time) (*Order, error) {
	return newOrder(id, tableID, lines, Queued, createdAt)
}

// RestoreOrder reconstructs an Order from persistence with an explicit status.
// Used by repository implementations only; application code creates orders
// through NewOrder so they always start Queued.
func RestoreOrder(id kernel.UUID, tableID kernel.UUID, lines []Line, status Status, createdAt time.Time) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return newOrder(id, tableID, lines, status, createdAt)
}

func newOrder(id kernel.UUID, tableID kernel.UUID, lines []Line, status Status, createdAt time.Time) (*Order, error) {
	order := &Order{
		status:        status,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setTableID(tableID),
		order.setLines(lines),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TableID returns the identifier of the table the order belongs to.
func (o *Order) TableID() kernel.UUID {
	return o.tableID
}

// Lines returns a copy of the order's line positions in their original sequence.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// ItemCount returns the sum of quantities across all lines.
// This is the figure the admission control compares against the
// max-items-per-order limit.
func (o *Order) ItemCount() int {
	total := 0
	for _, line := range o.lines {
		total += line.Quantity()
	}
	return total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Advance moves the order to the unique successor status in the pipeline
// (Queued -> Preparing -> Ready -> Delivered).
//
// Returns the new status on success, ErrAlreadyTerminal if the order is
// Delivered or Cancelled. A failed advance never mutates the order.
func (o *Order) Advance() (Status, error) {
	newStatus, err := o.status.Advance()
	if err != nil {
		return 0, err
	}

	o.status = newStatus
	return newStatus, nil
}

// Cancel abandons the order. Allowed only while Queued or Preparing;
// returns ErrNotCancellable or ErrAlreadyTerminal otherwise.
//
// Who may cancel (the actor's role and table) is decided by the application
// layer; the aggregate only enforces the state machine.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	o.tableID = tableID
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errors.New("createdAt is required")
	}
	o.createdAt = createdAt
	return nil
}
