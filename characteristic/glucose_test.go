package characteristic

import (
	"testing"

	"github.com/gattkit/gattkit/errs"
	"github.com/stretchr/testify/require"
)

func TestGlucoseDecode(t *testing.T) {
	// Sequence 5, 2026-08-29 10:30:05, offset -30 min, 82 mg/dL as
	// 820e-1, capillary whole blood (1) from finger (2), status word,
	// context follows.
	data := []byte{
		0x1B,       // flags: offset, concentration, status, context
		0x05, 0x00, // sequence number
		0xEA, 0x07, 0x08, 0x1D, 0x0A, 0x1E, 0x05, // base time
		0xE2, 0xFF, // time offset -30
		0x34, 0xD3, // concentration 820e-3
		0x21,       // type 1, location 2
		0x01, 0x01, // sensor status
	}

	outcome := Decode(TypeGlucoseMeasurement, data)
	require.True(t, outcome.Success)

	m := outcome.Value.(*GlucoseMeasurement)
	require.Equal(t, uint16(5), m.SequenceNumber)
	require.Equal(t, uint16(2026), m.BaseTime.Year)
	require.Equal(t, int16(-30), *m.TimeOffset)
	require.NotNil(t, m.Concentration)
	require.InDelta(t, 0.82, m.Concentration.Value.Value, 1e-9)
	require.Equal(t, uint8(1), m.Concentration.Type)
	require.Equal(t, uint8(2), m.Concentration.SampleLocation)
	require.False(t, m.MolPerL)
	require.Equal(t, uint16(0x0101), *m.SensorStatus)
	require.True(t, m.ContextFollows)
}

func TestGlucoseMandatoryPrefixTooShort(t *testing.T) {
	outcome := Decode(TypeGlucoseMeasurement, []byte{0x00, 0x05, 0x00, 0xEA, 0x07})
	require.False(t, outcome.Success)
	require.ErrorIs(t, outcome.Err, errs.ErrInvalidLength)
}
