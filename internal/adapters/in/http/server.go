// Package http exposes the order, table, auth and event operations over a
// JSON API. Handlers translate between wire shapes and application commands;
// every business rule stays in the command and query handlers.
package http

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"tableside/internal/core/application/auth"
	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/session"
	"tableside/internal/eventbus"
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	PlaceOrder     commands.PlaceOrderCommandHandler
	AdvanceOrder   commands.AdvanceOrderCommandHandler
	CancelOrder    commands.CancelOrderCommandHandler
	DeleteOrder    commands.DeleteOrderCommandHandler
	AddTable       commands.AddTableCommandHandler
	RenameTable    commands.RenameTableCommandHandler
	DeleteTable    commands.DeleteTableCommandHandler
	RotatePin      commands.RotatePinCommandHandler
	SetItemAvail   commands.SetMenuItemAvailabilityCommandHandler
	UpdateSettings commands.UpdateSettingsCommandHandler

	GetTableOrders  queries.GetTableOrdersQueryHandler
	GetActiveOrders queries.GetActiveOrdersQueryHandler
}

// Server handles HTTP requests. It coordinates between the wire protocol,
// the authentication gate and the application use cases, and owns the set of
// live event streams for heartbeat delivery.
type Server struct {
	handlers Handlers
	gate     *auth.Gate
	bus      *eventbus.Bus
	log      *slog.Logger

	mu      sync.Mutex
	streams map[chan struct{}]struct{}
}

// NewServer creates an HTTP server around the given use case handlers.
func NewServer(handlers Handlers, gate *auth.Gate, bus *eventbus.Bus, log *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		gate:     gate,
		bus:      bus,
		log:      log,
		streams:  make(map[chan struct{}]struct{}),
	}
}

// RegisterRoutes attaches every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/auth/table", s.AuthenticateTable)
	api.POST("/auth/staff", s.AuthenticateStaff)
	api.POST("/auth/logout", s.Logout)

	api.POST("/tables", s.AddTable)
	api.PATCH("/tables/:id", s.RenameTable)
	api.DELETE("/tables/:id", s.DeleteTable)
	api.POST("/tables/:id/pin", s.RotatePin)

	api.POST("/tables/:id/orders", s.PlaceOrder)
	api.GET("/tables/:id/orders", s.GetTableOrders)
	api.PATCH("/orders/:id/advance", s.AdvanceOrder)
	api.PATCH("/orders/:id/cancel", s.CancelOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.GET("/orders/active", s.GetActiveOrders)

	api.PATCH("/menu/:id/availability", s.SetMenuItemAvailability)
	api.PUT("/settings", s.UpdateSettings)

	api.GET("/events", s.Events)
}

// AuthenticateTable handles POST /api/v1/auth/table - table PIN login.
// A malformed PIN is rejected the same way as a wrong one so the response
// never hints at the PIN format of a real table.
func (s *Server) AuthenticateTable(ctx echo.Context) error {
	var req TableAuthRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	tableID, err := kernel.UUIDFromString(req.TableID)
	if err != nil {
		return s.respondError(ctx, auth.ErrInvalidPin)
	}
	pin, err := kernel.NewPin(req.Pin)
	if err != nil {
		return s.respondError(ctx, auth.ErrInvalidPin)
	}

	token, sess, err := s.gate.AuthenticateTable(ctx.Request().Context(), tableID, pin)
	if err != nil {
		return s.respondError(ctx, err)
	}

	setSessionCookie(ctx, session.CategoryCustomer, token, sess.ExpiresAt())
	return ctx.JSON(http.StatusOK, sessionToResponse(sess))
}

// AuthenticateStaff handles POST /api/v1/auth/staff - role password login.
func (s *Server) AuthenticateStaff(ctx echo.Context) error {
	var req StaffAuthRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	role, err := session.RoleFromString(req.Role)
	if err != nil {
		return s.respondError(ctx, auth.ErrInvalidPassword)
	}

	token, sess, err := s.gate.AuthenticateStaff(ctx.Request().Context(), role, req.Password)
	if err != nil {
		return s.respondError(ctx, err)
	}

	setSessionCookie(ctx, session.CategoryStaff, token, sess.ExpiresAt())
	return ctx.JSON(http.StatusOK, sessionToResponse(sess))
}

// Logout handles POST /api/v1/auth/logout - clears one session slot. The
// other slot is never touched. Idempotent: logging out without a session in
// the slot still succeeds.
func (s *Server) Logout(ctx echo.Context) error {
	var req LogoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	category := session.Category(req.Category)
	if err := category.Validate(); err != nil {
		return s.respondError(ctx, err)
	}

	if cookie, err := ctx.Cookie(cookieName(category)); err == nil && cookie.Value != "" {
		s.gate.Logout(cookie.Value)
	}
	clearSessionCookie(ctx, category)

	return ctx.NoContent(http.StatusNoContent)
}

// PlaceOrder handles POST /api/v1/tables/:id/orders - order placement.
// Customers place for their own table; staff may place on a guest's behalf.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	tableID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid table id")
	}

	if _, err = s.requireTableAccess(ctx, tableID); err != nil {
		return s.respondError(ctx, err)
	}

	var req PlaceOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	lines := make([]order.Line, 0, len(req.Lines))
	for _, wire := range req.Lines {
		itemID, err := kernel.UUIDFromString(wire.MenuItemID)
		if err != nil {
			return badRequest(ctx, "invalid menu item id")
		}
		line, err := order.NewLine(itemID, wire.Quantity)
		if err != nil {
			return s.respondError(ctx, err)
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), tableID, lines)
	if err != nil {
		return s.respondError(ctx, err)
	}

	placed, err := s.handlers.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(placed))
}

// AdvanceOrder handles PATCH /api/v1/orders/:id/advance - moves an order one
// pipeline stage forward. Kitchen-level operation.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	if _, err = s.requireKitchen(ctx); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	advanced, err := s.handlers.AdvanceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(advanced))
}

// CancelOrder handles PATCH /api/v1/orders/:id/cancel. Who may cancel what
// is decided in the command handler from the acting session.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	actor, err := s.anySession(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cancelled, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(cancelled))
}

// DeleteOrder handles DELETE /api/v1/orders/:id - hard deletion of a
// finished order. The manager-only rule lives in the command handler.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	actor, err := s.anySession(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, actor)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddTable handles POST /api/v1/tables. The response carries the generated
// PIN; it is shown here once and afterwards only through rotation.
func (s *Server) AddTable(ctx echo.Context) error {
	if _, err := s.requireManager(ctx); err != nil {
		return s.respondError(ctx, err)
	}

	var req AddTableRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAddTableCommand(kernel.NewUUID(), req.Label)
	if err != nil {
		return s.respondError(ctx, err)
	}

	created, err := s.handlers.AddTable.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, tableToResponse(created))
}

// RenameTable handles PATCH /api/v1/tables/:id.
func (s *Server) RenameTable(ctx echo.Context) error {
	tableID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid table id")
	}

	if _, err = s.requireManager(ctx); err != nil {
		return s.respondError(ctx, err)
	}

	var req RenameTableRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRenameTableCommand(tableID, req.Label)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.handlers.RenameTable.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteTable handles DELETE /api/v1/tables/:id. Sessions bound to the table
// die lazily at their next validation.
func (s *Server) DeleteTable(ctx echo.Context) error {
	tableID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid table id")
	}

	if _, err = s.requireManager(ctx); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteTableCommand(tableID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.handlers.DeleteTable.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RotatePin handles POST /api/v1/tables/:id/pin. An empty body rotates to a
// random PIN; a body with a pin field sets that PIN.
func (s *Server) RotatePin(ctx echo.Context) error {
	tableID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid table id")
	}

	if _, err = s.requireManager(ctx); err != nil {
		return s.respondError(ctx, err)
	}

	var req RotatePinRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var cmd commands.RotatePinCommand
	if req.Pin != nil {
		pin, err := kernel.NewPin(*req.Pin)
		if err != nil {
			return s.respondError(ctx, err)
		}
		cmd, err = commands.NewRotatePinCommandWithPin(tableID, pin)
		if err != nil {
			return s.respondError(ctx, err)
		}
	} else {
		cmd, err = commands.NewRotatePinCommand(tableID)
		if err != nil {
			return s.respondError(ctx, err)
		}
	}

	result, err := s.handlers.RotatePin.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PinResponse{
		Pin:        result.Pin.String(),
		PinVersion: result.PinVersion,
	})
}

// SetMenuItemAvailability handles PATCH /api/v1/menu/:id/availability.
// Kitchen marks items sold out and back in stock during service.
func (s *Server) SetMenuItemAvailability(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid menu item id")
	}

	if _, err = s.requireKitchen(ctx); err != nil {
		return s.respondError(ctx, err)
	}

	var req SetAvailabilityRequest
	if err = ctx.Bind(&req); err != nil || req.Available == nil {
		return badRequest(ctx, "available field is required")
	}

	cmd, err := commands.NewSetMenuItemAvailabilityCommand(itemID, *req.Available)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.handlers.SetItemAvail.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateSettings handles PUT /api/v1/settings - replaces both admission
// limits. Applies to placements from the next request on; existing orders
// are never re-checked.
func (s *Server) UpdateSettings(ctx echo.Context) error {
	if _, err := s.requireManager(ctx); err != nil {
		return s.respondError(ctx, err)
	}

	var req UpdateSettingsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateSettingsCommand(req.MaxItemsPerOrder, req.MaxActiveOrdersPerTable)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.handlers.UpdateSettings.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTableOrders handles GET /api/v1/tables/:id/orders - a table's order
// history, newest first.
func (s *Server) GetTableOrders(ctx echo.Context) error {
	tableID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid table id")
	}

	if _, err = s.requireTableAccess(ctx, tableID); err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetTableOrdersQuery(tableID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	results, err := s.handlers.GetTableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queryOrdersToResponse(results))
}

// GetActiveOrders handles GET /api/v1/orders/active - the kitchen board,
// oldest first.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	if _, err := s.requireKitchen(ctx); err != nil {
		return s.respondError(ctx, err)
	}

	results, err := s.handlers.GetActiveOrders.Handle(
		ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queryOrdersToResponse(results))
}
