// Package auth implements authentication and session validation for both
// client populations: customers proving a table PIN and staff proving a role
// password. Issued sessions are immutable snapshots; revocation is lazy and
// happens at validation time by comparing the snapshot against current state.
package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/session"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/core/ports"
)

var (
	// ErrInvalidPin rejects a table login with a wrong PIN or unknown table.
	// The two cases are deliberately indistinguishable to the caller.
	ErrInvalidPin = errors.New("table id or pin is incorrect")

	// ErrInvalidPassword rejects a staff login with a wrong password or a
	// role that has no provisioned credential.
	ErrInvalidPassword = errors.New("role or password is incorrect")

	// ErrSessionNotFound rejects a token the store does not know. Either it
	// was never issued or it was already removed.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired rejects a session past its expiry time.
	ErrSessionExpired = errors.New("session has expired")

	// ErrSessionRevoked rejects a customer session whose table was deleted or
	// whose PIN was rotated after the session was issued.
	ErrSessionRevoked = errors.New("session has been revoked")
)

// SessionStore is the gate's view of the token store.
type SessionStore interface {
	Add(sess session.Session) string
	Get(token string) (session.Session, bool)
	Delete(token string)
}

// TableSource provides current table state for login and validation reads.
// Reads run outside any command transaction; a stale read here only delays
// lazy revocation by one request.
type TableSource interface {
	Get(ctx context.Context, id kernel.UUID) (*table.Table, error)
}

// Gate issues and validates sessions for both populations.
type Gate struct {
	store       SessionStore
	tables      TableSource
	staff       ports.StaffRepository
	customerTTL time.Duration
	staffTTL    time.Duration
	now         func() time.Time
}

// NewGate creates an authentication gate.
// now supplies issue and expiry timestamps; pass time.Now outside tests.
func NewGate(
	store SessionStore,
	tables TableSource,
	staff ports.StaffRepository,
	customerTTL time.Duration,
	staffTTL time.Duration,
	now func() time.Time,
) *Gate {
	return &Gate{
		store:       store,
		tables:      tables,
		staff:       staff,
		customerTTL: customerTTL,
		staffTTL:    staffTTL,
		now:         now,
	}
}

// AuthenticateTable verifies a table PIN and issues a customer session bound
// to the table and its current PIN version. Unknown table and wrong PIN both
// come back as ErrInvalidPin.
func (g *Gate) AuthenticateTable(ctx context.Context, tableID kernel.UUID, pin kernel.Pin) (string, session.Session, error) {
	tbl, err := g.tables.Get(ctx, tableID)
	if err != nil {
		return "", session.Session{}, ErrInvalidPin
	}

	if !tbl.Pin().IsEqual(pin) {
		return "", session.Session{}, ErrInvalidPin
	}

	sess, err := session.NewCustomerSession(tbl.ID(), tbl.PinVersion(), g.now(), g.customerTTL)
	if err != nil {
		return "", session.Session{}, err
	}

	return g.store.Add(sess), sess, nil
}

// AuthenticateStaff verifies a role password and issues a staff session.
// Missing credential and wrong password both come back as ErrInvalidPassword.
func (g *Gate) AuthenticateStaff(ctx context.Context, role session.Role, password string) (string, session.Session, error) {
	if !role.IsStaff() {
		return "", session.Session{}, ErrInvalidPassword
	}

	cred, err := g.staff.GetCredential(ctx, role)
	if err != nil {
		return "", session.Session{}, ErrInvalidPassword
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return "", session.Session{}, ErrInvalidPassword
	}

	sess, err := session.NewStaffSession(role, g.now(), g.staffTTL)
	if err != nil {
		return "", session.Session{}, err
	}

	return g.store.Add(sess), sess, nil
}

// Validate checks a presented token and returns its session when still good.
//
// A customer session is revalidated against current table state on every
// call: the table must still exist and its PIN version must equal the
// session's snapshot. Any failure removes the token from the store so the
// same token cannot be retried.
func (g *Gate) Validate(ctx context.Context, token string) (session.Session, error) {
	sess, ok := g.store.Get(token)
	if !ok {
		return session.Session{}, ErrSessionNotFound
	}

	if sess.IsExpired(g.now()) {
		g.store.Delete(token)
		return session.Session{}, ErrSessionExpired
	}

	if sess.Category() == session.CategoryCustomer {
		tbl, err := g.tables.Get(ctx, *sess.TableID())
		if err != nil {
			g.store.Delete(token)
			return session.Session{}, ErrSessionRevoked
		}
		if tbl.PinVersion() != sess.PinVersion() {
			g.store.Delete(token)
			return session.Session{}, ErrSessionRevoked
		}
	}

	return sess, nil
}

// Logout removes a token. Unknown tokens are ignored; logout is idempotent.
func (g *Gate) Logout(token string) {
	g.store.Delete(token)
}
