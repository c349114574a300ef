// Package table contains the Table aggregate: a physical table with its
// display label, current four-digit PIN and monotonic PIN version. The PIN
// version is the anchor of lazy session invalidation - rotating the PIN bumps
// the version, and any customer session holding an older snapshot fails its
// next validity check.
package table
