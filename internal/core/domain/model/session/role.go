package session

import (
	"fmt"

	"tableside/internal/pkg/errs"
)

// Role identifies what an authenticated party is allowed to do.
//
// The privilege order is Manager > Kitchen > Customer: a manager credential
// satisfies every kitchen-level check, and a customer is only ever allowed to
// act on their own table. The hierarchy is expressed through the ActsAs*
// predicates rather than a formal lattice - three roles do not warrant one.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is a guest authenticated against one table's PIN.
	RoleCustomer

	// RoleKitchen is staff advancing orders through the fulfillment pipeline.
	RoleKitchen

	// RoleManager is staff with full privilege, including PIN rotation,
	// table administration and hard deletion of finished orders.
	RoleManager
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleKitchen:  "kitchen",
		RoleManager:  "manager",
	}
}

// RoleFromString parses a role name as it appears in requests and persistence.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleKitchen, RoleManager:
		return nil
	case RoleUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
}

// String returns the lowercase role name. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// IsStaff reports whether the role belongs to the staff session category.
func (r Role) IsStaff() bool {
	return r == RoleKitchen || r == RoleManager
}

// ActsAsKitchen reports whether the role satisfies kitchen-level checks.
// Manager is a superset of kitchen.
func (r Role) ActsAsKitchen() bool {
	return r == RoleKitchen || r == RoleManager
}

// ActsAsManager reports whether the role satisfies manager-level checks.
func (r Role) ActsAsManager() bool {
	return r == RoleManager
}
