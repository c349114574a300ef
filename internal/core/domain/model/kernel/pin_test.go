package kernel_test

import (
	"testing"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPin(t *testing.T) {
	t.Run("accepts_four_digits", func(t *testing.T) {
		pin, err := kernel.NewPin("0042")

		require.NoError(t, err)
		require.NoError(t, pin.Validate())
		assert.Equal(t, "0042", pin.String())
	})

	t.Run("rejects_empty", func(t *testing.T) {
		_, err := kernel.NewPin("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_wrong_length", func(t *testing.T) {
		for _, digits := range []string{"1", "123", "12345"} {
			_, err := kernel.NewPin(digits)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "pin %q", digits)
		}
	})

	t.Run("rejects_non_digits", func(t *testing.T) {
		for _, digits := range []string{"12a4", "12 4", "١٢٣٤", "-123"} {
			_, err := kernel.NewPin(digits)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "pin %q", digits)
		}
	})
}

func TestNewRandomPin(t *testing.T) {
	t.Run("always_produces_valid_pins", func(t *testing.T) {
		for range 100 {
			pin := kernel.NewRandomPin()
			require.NoError(t, pin.Validate())
			require.Len(t, pin.String(), kernel.PinLength)
		}
	})
}

func TestPin_IsEqual(t *testing.T) {
	a, err := kernel.NewPin("1234")
	require.NoError(t, err)
	b, err := kernel.NewPin("1234")
	require.NoError(t, err)
	c, err := kernel.NewPin("4321")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestPin_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var pin kernel.Pin

		err := pin.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrPinIsNotConstructed)
	})
}
