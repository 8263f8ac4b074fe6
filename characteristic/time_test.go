package characteristic

import (
	"testing"

	"github.com/gattkit/gattkit/encoding"
	"github.com/stretchr/testify/require"
)

func TestDateTimeCharacteristic(t *testing.T) {
	t.Run("decode", func(t *testing.T) {
		outcome := Decode(TypeDateTime, []byte{0xEA, 0x07, 0x08, 0x1D, 0x0A, 0x1E, 0x05})
		require.True(t, outcome.Success)
		require.Equal(t, &DateTimeValue{DateTime: sampleDateTime()}, outcome.Value)
	})

	t.Run("unknown time is all zeros", func(t *testing.T) {
		outcome := Decode(TypeDateTime, make([]byte, encoding.DateTimeLength))
		require.True(t, outcome.Success)
		require.False(t, outcome.Value.(*DateTimeValue).DateTime.IsKnown())
	})

	t.Run("invalid month", func(t *testing.T) {
		outcome := Decode(TypeDateTime, []byte{0xEA, 0x07, 0x0D, 0x1D, 0x0A, 0x1E, 0x05})
		require.False(t, outcome.Success)
		require.Len(t, outcome.FieldErrors, 1)
	})
}

func TestCurrentTimeValidate(t *testing.T) {
	ct := &CurrentTime{DateTime: sampleDateTime(), DayOfWeek: 9}

	fieldErrs := currentTimeCodec{}.Validate(ct)
	require.Len(t, fieldErrs, 1)
	require.Equal(t, "day of week", fieldErrs[0].Field)
}
