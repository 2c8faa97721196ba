package queries

import (
	"printfarm/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func toUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func toOptionalUUID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil //nolint:nilnil // absent is not an error
	}
	id, err := toUUID(raw.UUID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
