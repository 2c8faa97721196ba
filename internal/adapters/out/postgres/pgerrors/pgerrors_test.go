package pgerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"printfarm/internal/adapters/out/postgres/pgerrors"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "lib/pq unique violation", err: &pq.Error{Code: "23505", Constraint: "idx_products_code"}, want: true},
		{name: "wrapped lib/pq unique violation", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), want: true},
		{name: "translated by gorm", err: gorm.ErrDuplicatedKey, want: true},
		{name: "foreign key violation", err: &pq.Error{Code: "23503"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pgerrors.IsUniqueViolation(tt.err))
		})
	}
}

func TestConstraint(t *testing.T) {
	assert.Equal(t, "idx_orders_code", pgerrors.Constraint(&pq.Error{Code: "23505", Constraint: "idx_orders_code"}))
	assert.Empty(t, pgerrors.Constraint(errors.New("boom")))
}
