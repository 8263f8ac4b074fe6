package characteristic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSCGroupedFields(t *testing.T) {
	// Wheel bit gates the uint32+uint16 pair as one unit.
	data := []byte{0x01, 0x0A, 0x28, 0x00, 0x00, 0x10, 0xA4}

	outcome := Decode(TypeCSCMeasurement, data)
	require.True(t, outcome.Success)

	m := outcome.Value.(*CSCMeasurement)
	require.NotNil(t, m.Wheel)
	require.Equal(t, uint32(10250), m.Wheel.Revolutions)
	require.Equal(t, uint16(0xA410), m.Wheel.LastEventTime)
	require.Nil(t, m.Crank)
}

// TestCSCFlagCombinations checks that each of the 2^2 flag combinations
// produces exactly the flagged revolution pairs.
func TestCSCFlagCombinations(t *testing.T) {
	for combo := 0; combo < 4; combo++ {
		m := &CSCMeasurement{}
		if combo&1 != 0 {
			m.Wheel = &WheelRevolutionData{Revolutions: 7, LastEventTime: 8}
		}
		if combo&2 != 0 {
			m.Crank = &CrankRevolutionData{Revolutions: 9, LastEventTime: 10}
		}

		data, err := Encode(TypeCSCMeasurement, m)
		require.NoError(t, err)
		require.Equal(t, uint8(combo), data[0])

		outcome := Decode(TypeCSCMeasurement, data)
		require.True(t, outcome.Success)
		require.Equal(t, m, outcome.Value)
	}
}

func TestCSCTruncatedGroup(t *testing.T) {
	// Wheel flagged but the pair is cut mid-way: one field error, whole
	// group absent.
	outcome := Decode(TypeCSCMeasurement, []byte{0x01, 0x0A, 0x28, 0x00, 0x00})
	require.False(t, outcome.Success)

	m := outcome.Value.(*CSCMeasurement)
	require.Nil(t, m.Wheel)
	require.Len(t, outcome.FieldErrors, 1)
	require.Equal(t, "wheel revolution data", outcome.FieldErrors[0].Field)
	require.Equal(t, 1, outcome.FieldErrors[0].Offset)
}
