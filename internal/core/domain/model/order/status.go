package order

import (
	"errors"
	"fmt"

	"tableside/internal/pkg/errs"
)

// ErrAlreadyTerminal is returned when advancing or cancelling an order whose
// status is Delivered or Cancelled. Repeating the call never mutates state.
var ErrAlreadyTerminal = errors.New("order is already in a terminal status")

// ErrNotCancellable is returned when cancelling an order that has progressed
// past Preparing but is not yet terminal.
var ErrNotCancellable = errors.New("order can only be cancelled while queued or preparing")

// Status represents the fulfillment state of an order.
// It implements a state machine with defined transitions:
//
//	Queued ──> Preparing ──> Ready ──> Delivered
//	   │           │
//	   └───────────┴──> Cancelled
//
// Delivered and Cancelled are terminal; no transition leaves them.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Queued is the initial status when an order is first placed.
	// Queued orders are waiting for the kitchen to pick them up.
	Queued

	// Preparing indicates the kitchen has started working on the order.
	Preparing

	// Ready indicates the order is prepared and awaiting delivery to the table.
	Ready

	// Delivered indicates the order reached the table. Terminal.
	Delivered

	// Cancelled indicates the order was abandoned before completion.
	// Reachable only from Queued or Preparing. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Queued:    "Queued",
		Preparing: "Preparing",
		Ready:     "Ready",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Queued:    "Queued",
		Preparing: "Preparing",
		Ready:     "Ready",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid. Used to vet Status values
// arriving from external sources such as the database.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether the order still occupies kitchen capacity.
// Only Queued and Preparing orders count against the per-table
// active-order limit; Ready, Delivered and Cancelled do not.
func (s Status) IsActive() bool {
	return s == Queued || s == Preparing
}

// Advance transitions the status to its unique successor in the pipeline.
//
// Valid transitions:
//   - Queued -> Preparing
//   - Preparing -> Ready
//   - Ready -> Delivered
//
// Returns ErrAlreadyTerminal for Delivered and Cancelled, and a validation
// error for Unknown. There is no next state beyond Delivered.
func (s Status) Advance() (Status, error) {
	switch s {
	case Queued:
		return Preparing, nil
	case Preparing:
		return Ready, nil
	case Ready:
		return Delivered, nil
	case Delivered, Cancelled:
		return 0, ErrAlreadyTerminal
	case Unknown:
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%s is not a valid status to advance", s.String()),
	)
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Queued -> Cancelled
//   - Preparing -> Cancelled
//
// Returns ErrAlreadyTerminal for Delivered and Cancelled, ErrNotCancellable
// for Ready, and a validation error for Unknown.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Queued, Preparing:
		return Cancelled, nil
	case Ready:
		return 0, ErrNotCancellable
	case Delivered, Cancelled:
		return 0, ErrAlreadyTerminal
	case Unknown:
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%s is not a valid status to cancel", s.String()),
	)
}
