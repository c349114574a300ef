package kernel

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

// PinLength is the exact number of decimal digits in a table PIN.
const PinLength = 4

// ErrPinIsNotConstructed is returned when attempting to use an improperly
// initialized Pin. Pins must be created using NewPin or NewRandomPin
// constructors to ensure validity.
var ErrPinIsNotConstructed = errs.NewValueIsRequiredError(
	"pin must be created via NewPin or NewRandomPin constructors")

// Pin represents a table access code of exactly four decimal digits.
// Pin is an immutable value object; the zero value is invalid and will fail
// validation - use the constructors to create instances.
//
// Example:
//
//	pin, err := kernel.NewPin("0042")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(pin) // Output: 0042
type Pin struct { //nolint:recvcheck //using for validation
	digits string
	guard  guard.ConstructorGuard
}

// NewPin creates a Pin from its string representation.
// The string must consist of exactly PinLength decimal digits; leading zeros
// are significant ("0042" and "42" are not the same PIN, and the latter is
// invalid). Returns an error for any other input.
func NewPin(digits string) (Pin, error) {
	pin := Pin{
		guard: guard.NewConstructorGuard(),
	}

	if err := pin.setDigits(digits); err != nil {
		return Pin{}, err
	}

	return pin, nil
}

// NewRandomPin creates a Pin with uniformly random digits.
// Used when a table is created or when staff rotate a PIN without supplying
// an explicit replacement.
func NewRandomPin() Pin {
	pin, _ := NewPin(fmt.Sprintf("%04d", rand.IntN(10000))) //nolint:gosec // access code, not a secret key
	return pin
}

// Validate checks if the Pin was properly constructed using a constructor.
// The zero value of Pin is invalid and will fail this validation.
func (p Pin) Validate() error {
	return p.guard.Validate(ErrPinIsNotConstructed)
}

// String returns the four-digit representation, leading zeros included.
func (p Pin) String() string {
	return p.digits
}

// IsEqual compares two Pins digit for digit.
func (p Pin) IsEqual(other Pin) bool {
	return p.digits == other.digits
}

func (p *Pin) setDigits(digits string) error {
	if digits == "" {
		return errs.NewValueIsRequiredError("pin")
	}
	if len(digits) != PinLength {
		return errs.NewValueIsInvalidErrorWithCause("pin",
			fmt.Errorf("%d digits given, %d required", len(digits), PinLength))
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("pin",
				errors.New("pin must contain decimal digits only"))
		}
	}

	p.digits = digits
	return nil
}
