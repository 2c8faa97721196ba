package kernel

import (
	"fmt"
	"strings"

	"printfarm/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was left at its zero value
// instead of being built through NewUUID, UUIDFromString or UUIDFromBytes.
// Validate returns it for the nil UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the value object every aggregate of the print farm is keyed by:
// products, bobbins, orders and stock movements. It wraps
// github.com/google/uuid and keeps the underlying value private so an
// identifier cannot change after it is built.
//
// The zero value is invalid. Build identifiers with NewUUID for new
// aggregates, or with UUIDFromString / UUIDFromBytes when rehydrating rows
// and decoding requests.
//
// UUID implements encoding.TextMarshaler, so it can travel inside JSON
// payloads (bobbin selections, published events) without a DTO.
//
// Example usage:
//
//	// A freshly registered spool
//	spoolID := kernel.NewUUID()
//
//	// An identifier taken from a URL path
//	orderID, err := kernel.UUIDFromString("9f1c2a4e-5b7d-4e21-8c3a-0d6e4f2b1a90")
//	if err != nil {
//	    return errs.NewValueIsInvalidErrorWithCause("orderId", err)
//	}
//
//	// Keying an aggregate
//	type Bobbin struct {
//	    id kernel.UUID
//	    // material, weights...
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) identifier. Commands use it
// when they create an aggregate.
//
// Example:
//
//	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), nil, items, false, actor)
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses any textual form accepted by uuid.Parse:
//   - "9f1c2a4e-5b7d-4e21-8c3a-0d6e4f2b1a90"
//   - "{9f1c2a4e-5b7d-4e21-8c3a-0d6e4f2b1a90}"
//   - "urn:uuid:9f1c2a4e-5b7d-4e21-8c3a-0d6e4f2b1a90"
//
// Order codes such as "ORD-20250101-ABC123" are not identifiers and fail
// to parse.
//
// Example:
//
//	productID, err := kernel.UUIDFromString(row.ProductID)
//	if err != nil {
//	    return nil, fmt.Errorf("stock movement %s: %w", row.ID, err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from its 16-byte representation. The HTTP
// adapter uses it for the openapi_types.UUID values bound from paths and
// bodies. The nil UUID is rejected with ErrUUIDIsNotConstructed.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(params.ProductId[:])
//	if err != nil {
//	    return errs.NewValueIsInvalidErrorWithCause("productId", err)
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// MustUUID parses s and panics on failure. Intended for fixtures and tests.
func MustUUID(s string) UUID {
	id, err := UUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical lowercase "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
// form. Log attributes, span attributes and Kafka message keys use it.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns a copy of the underlying uuid.UUID, not a byte slice.
// Repositories store it directly in uuid columns; slice it with [:] when
// raw bytes are needed.
//
// Example:
//
//	db.Raw("SELECT status FROM orders WHERE id = ?", orderID.Bytes())
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
//
// Example:
//
//	if !line.ProductID.IsEqual(p.ID()) {
//	    continue
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Compare orders identifiers by their canonical string form and returns
// -1, 0 or +1. Product rows are locked in this order and the bobbin
// allocator breaks ties with it.
func (u UUID) Compare(other UUID) int {
	return strings.Compare(u.id.String(), other.id.String())
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID. Aggregate
// constructors call it on every identifier they receive.
//
// Example:
//
//	func NewBobbin(id kernel.UUID, ...) (*Bobbin, error) {
//	    if err := id.Validate(); err != nil {
//	        return nil, err
//	    }
//	    ...
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.id.String()), nil
}

func (u *UUID) UnmarshalText(text []byte) error {
	id, err := UUIDFromString(string(text))
	if err != nil {
		return err
	}
	*u = id
	return nil
}
