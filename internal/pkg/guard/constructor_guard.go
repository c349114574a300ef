// Package guard implements the constructor-guard pattern used by domain
// value objects and commands to reject zero-value instances.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by Validate when a
// nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. Embedding a ConstructorGuard in a
// struct makes a zero-value instance distinguishable from a properly
// constructed one: the internal flag is only set by NewConstructorGuard.
//
// Example usage:
//
//	var ErrPinNotConstructed = errors.New("Pin must be created via NewPin")
//
//	type Pin struct {
//	    digits string
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewPin(digits string) (Pin, error) {
//	    // validate digits ...
//	    return Pin{digits: digits, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p Pin) Validate() error {
//	    return p.guard.Validate(ErrPinNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call it in the constructor of domain objects.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns nil for constructed objects, validationError for zero
// values, or ErrDefaultConstructorGuard if validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
