package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"printfarm/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("product", "PRD-001")

		assert.Equal(t, "product", err.ParamName)
		assert.Equal(t, "PRD-001", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: PRD-001", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("bobbin", "b-42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: bobbin, ID is: b-42 (cause: record not found)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status", errors.New("unknown code SHIPPED"))

		assert.Equal(t, "value is invalid: status (cause: unknown code SHIPPED)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, 1000)

		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 1000, err.Max)
		assert.Equal(t, "value is invalid: 0 is quantity, min value is 1, max value is 1000", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("remaining weight", 1200, 0, 1000, errors.New("exceeds spool"))

		assert.Equal(t,
			"value is invalid: 1200 is remaining weight, min value is 0, max value is 1000 (cause: exceeds spool)",
			err.Error())
	})

	t.Run("newlines in values are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "burnt\nbatch", 0, 10)

		assert.Contains(t, err.Error(), "burnt batch")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("product code")
	assert.Equal(t, "value is required: product code", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	err = errs.NewValueIsRequiredErrorWithCause("product code", errors.New("blank"))
	assert.Equal(t, "value is required: product code (cause: blank)", err.Error())
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidError("product")

		assert.Equal(t, "version is invalid: product", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidErrorWithCause("product", errors.New("expected 3"))

		assert.Equal(t, "version is invalid: product (cause: expected 3)", err.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	wrapped := fmt.Errorf("reserve stock: %w", errs.NewObjectNotFoundError("product", "x"))
	require.ErrorIs(t, wrapped, errs.ErrObjectNotFound)

	var target *errs.ObjectNotFoundError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "product", target.ParamName)

	require.ErrorIs(t, errs.NewValueIsInvalidError("x"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("x", 1, 2, 3), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("x"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewVersionIsInvalidError("x"), errs.ErrVersionIsInvalid)
}
