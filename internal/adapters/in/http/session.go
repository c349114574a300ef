package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tableside/internal/core/application/auth"
	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/session"
)

// Cookie names for the two independent session slots. A browser tab can hold
// both at once; staff reviewing a table from their own phone keeps the
// customer session intact.
const (
	customerCookieName = "customer_session"
	staffCookieName    = "staff_session"
)

func cookieName(category session.Category) string {
	if category == session.CategoryStaff {
		return staffCookieName
	}
	return customerCookieName
}

// sessionFromSlot validates the token in the named cookie. A missing cookie
// comes back as auth.ErrSessionNotFound so callers map it like any other
// authentication failure.
func (s *Server) sessionFromSlot(ctx echo.Context, name string) (session.Session, error) {
	cookie, err := ctx.Cookie(name)
	if err != nil || cookie.Value == "" {
		return session.Session{}, auth.ErrSessionNotFound
	}
	return s.gate.Validate(ctx.Request().Context(), cookie.Value)
}

// anySession resolves the request's acting session, preferring the staff
// slot. Operations whose privilege rules live in the command handler (cancel,
// delete) take whichever session the client holds.
func (s *Server) anySession(ctx echo.Context) (session.Session, error) {
	if sess, err := s.sessionFromSlot(ctx, staffCookieName); err == nil {
		return sess, nil
	}
	return s.sessionFromSlot(ctx, customerCookieName)
}

func (s *Server) requireKitchen(ctx echo.Context) (session.Session, error) {
	sess, err := s.sessionFromSlot(ctx, staffCookieName)
	if err != nil {
		return session.Session{}, err
	}
	if !sess.Role().ActsAsKitchen() {
		return session.Session{}, commands.ErrForbidden
	}
	return sess, nil
}

func (s *Server) requireManager(ctx echo.Context) (session.Session, error) {
	sess, err := s.sessionFromSlot(ctx, staffCookieName)
	if err != nil {
		return session.Session{}, err
	}
	if !sess.Role().ActsAsManager() {
		return session.Session{}, commands.ErrForbidden
	}
	return sess, nil
}

// requireTableAccess admits staff, or a customer session bound to exactly
// this table. A customer holding a session for another table is forbidden,
// not unauthorized: the session itself is fine.
func (s *Server) requireTableAccess(ctx echo.Context, tableID kernel.UUID) (session.Session, error) {
	if sess, err := s.sessionFromSlot(ctx, staffCookieName); err == nil {
		return sess, nil
	}

	sess, err := s.sessionFromSlot(ctx, customerCookieName)
	if err != nil {
		return session.Session{}, err
	}
	if !sess.OwnsTable(tableID) {
		return session.Session{}, commands.ErrForbidden
	}
	return sess, nil
}

func setSessionCookie(ctx echo.Context, category session.Category, token string, expiresAt time.Time) {
	ctx.SetCookie(&http.Cookie{
		Name:     cookieName(category),
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(ctx echo.Context, category session.Category) {
	ctx.SetCookie(&http.Cookie{
		Name:     cookieName(category),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
