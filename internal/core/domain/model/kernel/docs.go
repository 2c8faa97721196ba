// Package kernel holds the value objects shared by every aggregate of the
// print farm: identifiers (UUID), filament materials (Material) and the
// domain event contract (DomainEvent, EventRecorder).
package kernel
