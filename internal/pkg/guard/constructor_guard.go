// Package guard detects domain values that bypassed their constructor.
package guard

import "errors"

var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value objects whose zero value is not a
// legal state. Only NewConstructorGuard produces a guard that validates.
//
//	type Material struct {
//	    filamentType string
//	    guard        guard.ConstructorGuard
//	}
//
//	func (m Material) Validate() error {
//	    return m.guard.Validate(ErrMaterialNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
