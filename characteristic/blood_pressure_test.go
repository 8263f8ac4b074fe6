package characteristic

import (
	"testing"

	"github.com/gattkit/gattkit/encoding"
	"github.com/stretchr/testify/require"
)

func TestBloodPressureDecode(t *testing.T) {
	t.Run("mandatory triple only", func(t *testing.T) {
		// 120/80 mmHg, MAP 93.
		data := []byte{0x00, 0x78, 0x00, 0x50, 0x00, 0x5D, 0x00}

		outcome := Decode(TypeBloodPressureMeasurement, data)
		require.True(t, outcome.Success)

		m := outcome.Value.(*BloodPressureMeasurement)
		require.False(t, m.UnitKPa)
		require.InDelta(t, 120, m.Systolic.Value, 1e-9)
		require.InDelta(t, 80, m.Diastolic.Value, 1e-9)
		require.InDelta(t, 93, m.MeanArterial.Value, 1e-9)
		require.Nil(t, m.Timestamp)
		require.Nil(t, m.PulseRate)
	})

	t.Run("unavailable value is a sentinel not a number", func(t *testing.T) {
		// MAP carries the NaN pattern.
		data := []byte{0x00, 0x78, 0x00, 0x50, 0x00, 0xFF, 0x07}

		outcome := Decode(TypeBloodPressureMeasurement, data)
		require.True(t, outcome.Success)

		m := outcome.Value.(*BloodPressureMeasurement)
		require.Equal(t, encoding.StateNaN, m.MeanArterial.State)
		require.False(t, m.MeanArterial.IsNumeric())
	})

	t.Run("kpa unit flag", func(t *testing.T) {
		// 16.0/10.7 kPa via scaled SFLOATs.
		data := []byte{0x01, 0xA0, 0xF0, 0x6B, 0xF0, 0x85, 0xF0}

		outcome := Decode(TypeBloodPressureMeasurement, data)
		require.True(t, outcome.Success)

		m := outcome.Value.(*BloodPressureMeasurement)
		require.True(t, m.UnitKPa)
		require.InDelta(t, 16.0, m.Systolic.Value, 1e-9)
		require.InDelta(t, 10.7, m.Diastolic.Value, 1e-9)
	})
}

func TestBloodPressureTimestampValidation(t *testing.T) {
	m := &BloodPressureMeasurement{
		Systolic:     encoding.Finite(120),
		Diastolic:    encoding.Finite(80),
		MeanArterial: encoding.Finite(93),
		Timestamp:    &encoding.DateTime{Year: 2026, Month: 13, Day: 1},
	}

	fieldErrs := bloodPressureCodec{}.Validate(m)
	require.Len(t, fieldErrs, 1)
	require.Equal(t, "timestamp", fieldErrs[0].Field)
}
