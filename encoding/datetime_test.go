package encoding

import (
	"testing"
	"time"

	"github.com/gattkit/gattkit/errs"
	"github.com/stretchr/testify/require"
)

func TestDateTimeRoundTrip(t *testing.T) {
	dt := DateTime{Year: 2024, Month: 6, Day: 15, Hours: 12, Minutes: 30, Seconds: 45}

	w := NewLEWriter()
	require.NoError(t, w.AppendDateTime(dt))
	data := w.Detach()

	require.Len(t, data, DateTimeLength)
	// Year 2024 = 0x07E8, little-endian.
	require.Equal(t, []byte{0xE8, 0x07, 6, 15, 12, 30, 45}, data)

	r := NewLEReader(data)
	parsed, err := r.DateTime()
	require.NoError(t, err)
	require.Equal(t, dt, parsed)
}

func TestDateTimeFromTime(t *testing.T) {
	src := time.Date(2024, 1, 1, 23, 59, 58, 123456000, time.UTC)
	dt := DateTimeFrom(src)

	require.Equal(t, DateTime{Year: 2024, Month: 1, Day: 1, Hours: 23, Minutes: 59, Seconds: 58}, dt)
	require.True(t, dt.IsKnown())
	require.Equal(t, src.Truncate(time.Second), dt.Time(time.UTC))
}

func TestDateTimeUnknown(t *testing.T) {
	var dt DateTime
	require.False(t, dt.IsKnown())
	require.True(t, dt.Time(time.UTC).IsZero())
	require.NoError(t, dt.Validate())
}

func TestDateTimeValidate(t *testing.T) {
	tests := []struct {
		name string
		dt   DateTime
	}{
		{"year below 1582", DateTime{Year: 1000}},
		{"month 13", DateTime{Month: 13}},
		{"day 32", DateTime{Day: 32}},
		{"hours 24", DateTime{Hours: 24}},
		{"minutes 60", DateTime{Minutes: 60}},
		{"seconds 60", DateTime{Seconds: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.dt.Validate(), errs.ErrValueOutOfRange)

			// Encode applies the same rule as a hard failure.
			w := NewLEWriter()
			defer w.Finish()
			require.ErrorIs(t, w.AppendDateTime(tt.dt), errs.ErrValueOutOfRange)
		})
	}
}
