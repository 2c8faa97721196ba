// Package product models a sellable item printed from one or more filaments.
//
// The Product aggregate owns the stock ledger: availableStock and
// reservedStock are mutated only through Reserve, Release, Produce and
// Deduct, each of which enforces that neither counter goes negative and
// returns the StockMovement it caused. Movements are also recorded as domain
// events and dispatched after the surrounding unit of work commits.
//
// Ledger operations:
//
//	Reserve  available -= q, reserved += q   (order created)
//	Release  available += q, reserved -= q   (order cancelled)
//	Produce  available += q                  (production run finished)
//	Deduct   available -= q                  (manual write-off with a reason)
package product
