// Package order implements the Order aggregate of the food ordering domain: the
// canonical order record, its price-snapshotted items and its append-only event
// trail.
//
// The package includes:
//   - Order: the aggregate root; every mutation appends an Event
//   - Status: the lifecycle state machine with an explicit adjacency table
//   - Item: an ordered menu item with the unit price copied at checkout
//   - Event: an immutable, sequenced record of something that happened to an order
//
// Key business rules:
//   - pending -> confirmed -> preparing -> ready_for_pickup -> out_for_delivery -> delivered
//   - cancelled is reachable from pending, confirmed and preparing only
//   - delivered and cancelled are terminal
//   - status always equals the status of the latest status_* event in the trail
//   - total == subtotal + delivery fee - discount, never negative
package order
