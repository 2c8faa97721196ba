// Package services holds the domain services of the print farm.
//
// The package includes:
//   - BobbinAllocator: picks the fullest sufficient spool per filament requirement
//   - OrderFulfillment: applies order transitions together with their stock side effects
package services
