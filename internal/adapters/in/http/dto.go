package http

import (
	"time"

	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/session"
	"tableside/internal/core/domain/model/table"
)

// Error is the JSON envelope for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OrderLine is one (menu item, quantity) position as sent and returned over
// the wire.
type OrderLine struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// Order is the wire representation of an order.
type Order struct {
	ID        string      `json:"id"`
	TableID   string      `json:"tableId"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	Lines     []OrderLine `json:"lines"`
}

// PlaceOrderRequest is the body of POST /api/v1/tables/:id/orders.
type PlaceOrderRequest struct {
	Lines []OrderLine `json:"lines"`
}

// TableAuthRequest is the body of POST /api/v1/auth/table.
type TableAuthRequest struct {
	TableID string `json:"tableId"`
	Pin     string `json:"pin"`
}

// StaffAuthRequest is the body of POST /api/v1/auth/staff.
type StaffAuthRequest struct {
	Role     string `json:"role"`
	Password string `json:"password"`
}

// SessionResponse describes an issued session. The token itself travels only
// in the session cookie.
type SessionResponse struct {
	Role      string    `json:"role"`
	TableID   *string   `json:"tableId,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LogoutRequest names which of the two session slots to clear.
type LogoutRequest struct {
	Category string `json:"category"`
}

// RotatePinRequest optionally carries an explicit replacement PIN; without
// one a random PIN is generated.
type RotatePinRequest struct {
	Pin *string `json:"pin"`
}

// PinResponse returns a table's new PIN to the manager who rotated it. This
// is the only place the service ever echoes a PIN after table creation.
type PinResponse struct {
	Pin        string `json:"pin"`
	PinVersion int64  `json:"pinVersion"`
}

// AddTableRequest is the body of POST /api/v1/tables.
type AddTableRequest struct {
	Label string `json:"label"`
}

// RenameTableRequest is the body of PATCH /api/v1/tables/:id.
type RenameTableRequest struct {
	Label string `json:"label"`
}

// TableResponse is returned from table creation and includes the initial PIN
// so staff can hand it to guests.
type TableResponse struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Pin        string `json:"pin"`
	PinVersion int64  `json:"pinVersion"`
}

// SetAvailabilityRequest is the body of PATCH /api/v1/menu/:id/availability.
// Available is a pointer so that an absent field is rejected instead of
// silently marking the item sold out.
type SetAvailabilityRequest struct {
	Available *bool `json:"available"`
}

// UpdateSettingsRequest is the body of PUT /api/v1/settings.
type UpdateSettingsRequest struct {
	MaxItemsPerOrder        int `json:"maxItemsPerOrder"`
	MaxActiveOrdersPerTable int `json:"maxActiveOrdersPerTable"`
}

func orderToResponse(o *order.Order) Order {
	lines := make([]OrderLine, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, OrderLine{
			MenuItemID: line.MenuItemID().String(),
			Quantity:   line.Quantity(),
		})
	}

	return Order{
		ID:        o.ID().String(),
		TableID:   o.TableID().String(),
		Status:    o.Status().String(),
		CreatedAt: o.CreatedAt(),
		Lines:     lines,
	}
}

func queryOrdersToResponse(results []queries.OrderResponse) []Order {
	response := make([]Order, 0, len(results))
	for _, result := range results {
		lines := make([]OrderLine, 0, len(result.Lines))
		for _, line := range result.Lines {
			lines = append(lines, OrderLine{
				MenuItemID: line.MenuItemID.String(),
				Quantity:   line.Quantity,
			})
		}
		response = append(response, Order{
			ID:        result.ID.String(),
			TableID:   result.TableID.String(),
			Status:    result.Status.String(),
			CreatedAt: result.CreatedAt,
			Lines:     lines,
		})
	}
	return response
}

func sessionToResponse(sess session.Session) SessionResponse {
	response := SessionResponse{
		Role:      sess.Role().String(),
		ExpiresAt: sess.ExpiresAt(),
	}
	if tableID := sess.TableID(); tableID != nil {
		id := tableID.String()
		response.TableID = &id
	}
	return response
}

func tableToResponse(tbl *table.Table) TableResponse {
	return TableResponse{
		ID:         tbl.ID().String(),
		Label:      tbl.Label(),
		Pin:        tbl.Pin().String(),
		PinVersion: tbl.PinVersion(),
	}
}
