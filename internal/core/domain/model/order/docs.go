// Package order implements the Order aggregate and its fulfillment status
// machine.
//
// The package includes:
//   - Order: the aggregate root holding line items, status and production metadata
//   - Status: canonical codes with Turkish display labels, a strict decoder
//     (ParseStatus) and a lenient one (StatusFromText) that falls back to Pending
//   - LineItem, ProductionLine, BobbinSelection: values owned by an order
//   - CreatedEvent, StatusChangedEvent, CancelledEvent: domain events
//
// Key business rules:
//   - an order has at least one line item and lists each product once
//   - status moves forward one step at a time: PENDING, PRODUCING, PRODUCED,
//     PREPARING, READY
//   - CANCELLED is reachable from every live status; from READY only with confirmation
//   - the skip-production flag is frozen once production starts
package order
