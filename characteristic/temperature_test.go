package characteristic

import (
	"testing"

	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/errs"
	"github.com/stretchr/testify/require"
)

func TestTemperatureDecode(t *testing.T) {
	t.Run("celsius value", func(t *testing.T) {
		// 36.6 C as FLOAT: mantissa 366, exponent -1.
		data := []byte{0x00, 0x6E, 0x01, 0x00, 0xFF}

		outcome := Decode(TypeTemperatureMeasurement, data)
		require.True(t, outcome.Success)

		m := outcome.Value.(*TemperatureMeasurement)
		require.False(t, m.Fahrenheit)
		require.InDelta(t, 36.6, m.Temperature.Value, 1e-9)
	})

	t.Run("with body site", func(t *testing.T) {
		data := []byte{0x04, 0x6E, 0x01, 0x00, 0xFF, 0x06}

		outcome := Decode(TypeTemperatureMeasurement, data)
		require.True(t, outcome.Success)

		m := outcome.Value.(*TemperatureMeasurement)
		require.NotNil(t, m.TempType)
		require.Equal(t, TempTypeMouth, *m.TempType)
	})

	t.Run("undefined body site is a field error", func(t *testing.T) {
		data := []byte{0x04, 0x6E, 0x01, 0x00, 0xFF, 0x63}

		outcome := Decode(TypeTemperatureMeasurement, data)
		require.False(t, outcome.Success)
		require.NoError(t, outcome.Err)

		// The value itself still decodes alongside the violation.
		m := outcome.Value.(*TemperatureMeasurement)
		require.InDelta(t, 36.6, m.Temperature.Value, 1e-9)
		require.Len(t, outcome.FieldErrors, 1)
		require.ErrorIs(t, outcome.FieldErrors[0].Reason, errs.ErrInvalidDiscreteValue)
	})
}

func TestTemperatureSentinelRoundTrip(t *testing.T) {
	m := &TemperatureMeasurement{Temperature: encoding.NRes()}

	data, err := Encode(TypeTemperatureMeasurement, m)
	require.NoError(t, err)
	// FLOAT NRes pattern with zero exponent.
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x80, 0x00}, data)

	outcome := Decode(TypeTemperatureMeasurement, data)
	require.True(t, outcome.Success)
	require.Equal(t, m, outcome.Value)
}
