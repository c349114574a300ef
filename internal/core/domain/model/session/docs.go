// Package session contains the Session value object and the Role hierarchy.
// Sessions come in two independent categories per client - one customer slot
// (bound to a table and a PIN-version snapshot) and one staff slot (kitchen
// or manager) - with independent TTLs and independent logout.
package session
