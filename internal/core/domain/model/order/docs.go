// Package order contains the Order aggregate and its fulfillment state
// machine. An order belongs to exactly one table, carries an ordered sequence
// of menu item lines, and moves through a strict status pipeline:
//
//	Queued ──> Preparing ──> Ready ──> Delivered
//	   │           │
//	   └───────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. The only way to change status is
// Advance (to the unique successor) or Cancel; arbitrary status writes are
// not expressible through the aggregate's API.
package order
