// Package events defines the closed set of domain events broadcast to
// connected clients. Every successful mutation publishes exactly one event;
// payloads carry just enough identifying data for a subscriber to invalidate
// precisely, never full entity state.
package events

// Kind tags an event variant. The set is closed: subscribers switch on Kind
// and may safely treat anything else as unknown-and-ignorable.
type Kind string

const (
	KindPinChanged      Kind = "pin-changed"
	KindTableAdded      Kind = "table-added"
	KindTableUpdated    Kind = "table-updated"
	KindTableDeleted    Kind = "table-deleted"
	KindOrderCreated    Kind = "order-created"
	KindOrderUpdated    Kind = "order-updated"
	KindOrderCancelled  Kind = "order-cancelled"
	KindOrderDeleted    Kind = "order-deleted"
	KindMenuChanged     Kind = "menu-changed"
	KindSettingsChanged Kind = "settings-changed"
	KindTablePresence   Kind = "table-presence"
)

// Event is the wire record pushed to every subscriber. Exactly one of the
// optional payload fields is populated, matching Kind. Events are immutable
// once published.
type Event struct {
	Kind Kind `json:"kind"`

	// TableID is set for pin-changed and table-* events.
	TableID string `json:"tableId,omitempty"`

	// PinVersion is set for pin-changed events so clients can tell whether
	// their session snapshot is the one being revoked.
	PinVersion int64 `json:"pinVersion,omitempty"`

	// OrderID, OrderTableID and OrderStatus are set for order-* events.
	OrderID      string `json:"orderId,omitempty"`
	OrderTableID string `json:"orderTableId,omitempty"`
	OrderStatus  string `json:"orderStatus,omitempty"`

	// Presence is the full table-id -> viewer-count mapping, set only for
	// table-presence events. Always a complete snapshot, never a delta, so a
	// newly joined subscriber is consistent without replaying history.
	Presence map[string]int `json:"presence,omitempty"`
}

// PinChanged builds the event published when a table's PIN is rotated.
func PinChanged(tableID string, pinVersion int64) Event {
	return Event{Kind: KindPinChanged, TableID: tableID, PinVersion: pinVersion}
}

// TableAdded builds the event published when staff create a table.
func TableAdded(tableID string) Event {
	return Event{Kind: KindTableAdded, TableID: tableID}
}

// TableUpdated builds the event published when staff rename a table.
func TableUpdated(tableID string) Event {
	return Event{Kind: KindTableUpdated, TableID: tableID}
}

// TableDeleted builds the event published when staff delete a table.
func TableDeleted(tableID string) Event {
	return Event{Kind: KindTableDeleted, TableID: tableID}
}

// OrderCreated builds the event published when an order passes admission
// control and is committed.
func OrderCreated(orderID, tableID, status string) Event {
	return Event{Kind: KindOrderCreated, OrderID: orderID, OrderTableID: tableID, OrderStatus: status}
}

// OrderUpdated builds the event published when an order advances a stage.
func OrderUpdated(orderID, tableID, status string) Event {
	return Event{Kind: KindOrderUpdated, OrderID: orderID, OrderTableID: tableID, OrderStatus: status}
}

// OrderCancelled builds the event published when an order is cancelled.
func OrderCancelled(orderID, tableID, status string) Event {
	return Event{Kind: KindOrderCancelled, OrderID: orderID, OrderTableID: tableID, OrderStatus: status}
}

// OrderDeleted builds the event published when a finished order is hard-deleted.
func OrderDeleted(orderID, tableID string) Event {
	return Event{Kind: KindOrderDeleted, OrderID: orderID, OrderTableID: tableID}
}

// MenuChanged builds the event published when any menu item changes.
func MenuChanged() Event {
	return Event{Kind: KindMenuChanged}
}

// SettingsChanged builds the event published when the admission limits change.
func SettingsChanged() Event {
	return Event{Kind: KindSettingsChanged}
}

// TablePresence builds the full-snapshot presence event.
func TablePresence(presence map[string]int) Event {
	return Event{Kind: KindTablePresence, Presence: presence}
}
