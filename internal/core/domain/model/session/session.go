package session

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

// ErrSessionIsNotConstructed is returned when a Session was not created
// through one of the factory methods.
var ErrSessionIsNotConstructed = errors.New(
	"Session must be created via NewCustomerSession or NewStaffSession")

// Category names one of the two independent session slots a client may hold.
// A customer session and a staff session coexist on the same client without
// interfering; logging out of one never touches the other.
type Category string

const (
	// CategoryCustomer is the table-bound guest session slot.
	CategoryCustomer Category = "customer"

	// CategoryStaff is the kitchen/manager session slot.
	CategoryStaff Category = "staff"
)

// Validate checks that the category is one of the two known slots.
func (c Category) Validate() error {
	switch c {
	case CategoryCustomer, CategoryStaff:
		return nil
	}
	return errs.NewValueIsInvalidError("category")
}

// Session is an authenticated binding between a client and the service.
//
// Customer sessions are bound to exactly one table and snapshot the table's
// PIN version at creation time; a later PIN rotation makes the snapshot stale
// and the session invalid even before its TTL expires. Staff sessions carry a
// role and no table.
//
// Session is an immutable value object; the zero value is invalid.
type Session struct {
	role       Role
	tableID    *kernel.UUID
	pinVersion int64
	createdAt  time.Time
	expiresAt  time.Time

	guard guard.ConstructorGuard
}

// NewCustomerSession creates a customer session bound to one table, capturing
// the table's current PIN version as the staleness anchor.
func NewCustomerSession(tableID kernel.UUID, pinVersion int64, now time.Time, ttl time.Duration) (Session, error) {
	if err := tableID.Validate(); err != nil {
		return Session{}, err
	}
	if pinVersion < 1 {
		return Session{}, errs.NewValueIsInvalidError("pinVersion")
	}
	if ttl <= 0 {
		return Session{}, errs.NewValueIsInvalidError("ttl")
	}

	return Session{
		role:       RoleCustomer,
		tableID:    &tableID,
		pinVersion: pinVersion,
		createdAt:  now,
		expiresAt:  now.Add(ttl),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewStaffSession creates a kitchen or manager session.
func NewStaffSession(role Role, now time.Time, ttl time.Duration) (Session, error) {
	if err := role.Validate(); err != nil {
		return Session{}, err
	}
	if !role.IsStaff() {
		return Session{}, errs.NewValueIsInvalidError("role")
	}
	if ttl <= 0 {
		return Session{}, errs.NewValueIsInvalidError("ttl")
	}

	return Session{
		role:      role,
		createdAt: now,
		expiresAt: now.Add(ttl),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Session was created via a factory method.
func (s Session) Validate() error {
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

// Role returns the session's role.
func (s Session) Role() Role {
	return s.role
}

// Category returns which of the two client slots this session occupies.
func (s Session) Category() Category {
	if s.role.IsStaff() {
		return CategoryStaff
	}
	return CategoryCustomer
}

// TableID returns the bound table for customer sessions, nil for staff.
func (s Session) TableID() *kernel.UUID {
	return s.tableID
}

// PinVersion returns the PIN version snapshot taken at authentication time.
// Zero for staff sessions.
func (s Session) PinVersion() int64 {
	return s.pinVersion
}

// CreatedAt returns the authentication timestamp.
func (s Session) CreatedAt() time.Time {
	return s.createdAt
}

// ExpiresAt returns the TTL expiry timestamp.
func (s Session) ExpiresAt() time.Time {
	return s.expiresAt
}

// IsExpired reports whether the session's TTL has elapsed at the given time.
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

// OwnsTable reports whether the session is a customer session bound to the
// given table. Staff sessions never own a table.
func (s Session) OwnsTable(tableID kernel.UUID) bool {
	return s.tableID != nil && s.tableID.IsEqual(tableID)
}
