package errs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shipmentId", "123")

		assert.Equal(t, "shipmentId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("shipmentId", "123", cause)

		assert.Equal(t, "shipmentId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: shipmentId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("tariffId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestObjectAlreadyExistsError(t *testing.T) {
	t.Run("NewObjectAlreadyExistsError", func(t *testing.T) {
		err := errs.NewObjectAlreadyExistsError("zoneCode", "EU-WEST")

		assert.Equal(t, "zoneCode", err.ParamName)
		assert.Equal(t, "EU-WEST", err.Value)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object already exists: zoneCode is: EU-WEST", err.Error())
		assert.Equal(t, errs.ErrObjectAlreadyExists, err.Unwrap())
	})

	t.Run("NewObjectAlreadyExistsErrorWithCause", func(t *testing.T) {
		cause := errors.New("unique constraint violated")
		err := errs.NewObjectAlreadyExistsErrorWithCause("carrierCode", "DHL", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object already exists: carrierCode is: DHL (cause: unique constraint violated)",
			err.Error())
	})
}

func TestObjectInUseError(t *testing.T) {
	err := errs.NewObjectInUseError("zone", "abc-123", "tariff")

	assert.Equal(t, "zone", err.ParamName)
	assert.Equal(t, "abc-123", err.ID)
	assert.Equal(t, "tariff", err.UsedBy)
	assert.Equal(t, "object is in use: zone abc-123 is referenced by tariff", err.Error())
	assert.Equal(t, errs.ErrObjectInUse, err.Unwrap())
	assert.ErrorIs(t, err, errs.ErrObjectInUse)
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("currency")

		assert.Equal(t, "currency", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: currency", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("currency", cause)

		assert.Equal(t, "currency", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: currency (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("priority", "150", 0, 120)

		assert.Equal(t, "priority", err.ParamName)
		assert.Equal(t, "150", err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is priority, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("countries")

		assert.Equal(t, "countries", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: countries", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("countries", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: countries (cause: missing required field)", err.Error())
	})
}

func TestVersionConflictError(t *testing.T) {
	err := errs.NewVersionConflictError("shipment", 3)

	assert.Equal(t, "shipment", err.ParamName)
	assert.Equal(t, int64(3), err.Version)
	assert.Equal(t, "version conflict: shipment at version 3 was modified concurrently", err.Error())
	assert.Equal(t, errs.ErrVersionConflict, err.Unwrap())
	assert.ErrorIs(t, err, errs.ErrVersionConflict)
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("shipment", "Delivered", "Pending")

	assert.Equal(t, "shipment", err.ParamName)
	assert.Equal(t, "Delivered", err.From)
	assert.Equal(t, "Pending", err.To)
	assert.Equal(t, "invalid transition: shipment cannot move from Delivered to Pending", err.Error())
	assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrObjectAlreadyExists)
		require.Error(t, errs.ErrObjectInUse)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrVersionConflict)
		require.Error(t, errs.ErrInvalidTransition)
	})
}
