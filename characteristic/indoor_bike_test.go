package characteristic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndoorBikeMoreDataPolarity(t *testing.T) {
	t.Run("clear bit means speed present", func(t *testing.T) {
		// flags 0x0000: only the instantaneous speed follows.
		outcome := Decode(TypeIndoorBikeData, []byte{0x00, 0x00, 0xF6, 0x09})
		require.True(t, outcome.Success)

		m := outcome.Value.(*IndoorBikeData)
		require.NotNil(t, m.Speed)
		require.Equal(t, uint16(2550), *m.Speed)
	})

	t.Run("set bit means speed absent", func(t *testing.T) {
		// flags 0x0001: More Data set, no speed; nothing else flagged.
		outcome := Decode(TypeIndoorBikeData, []byte{0x01, 0x00})
		require.True(t, outcome.Success)
		require.Nil(t, outcome.Value.(*IndoorBikeData).Speed)
	})

	t.Run("set bit with other fields", func(t *testing.T) {
		// More Data set, instantaneous power flagged: the power bytes
		// start right after the flags.
		outcome := Decode(TypeIndoorBikeData, []byte{0x41, 0x00, 0xFA, 0x00})
		require.True(t, outcome.Success)

		m := outcome.Value.(*IndoorBikeData)
		require.Nil(t, m.Speed)
		require.NotNil(t, m.Power)
		require.Equal(t, int16(250), *m.Power)
	})
}

func TestIndoorBikeGroupedEnergy(t *testing.T) {
	// More Data set (no speed), expended energy flagged: bit 8 lives in
	// the second flags byte.
	data := []byte{0x01, 0x01, 0x5E, 0x01, 0xBC, 0x02, 0x0C}
	outcome := Decode(TypeIndoorBikeData, data)
	require.True(t, outcome.Success)

	m := outcome.Value.(*IndoorBikeData)
	require.Equal(t, &ExpendedEnergy{Total: 350, PerHour: 700, PerMinute: 12}, m.Energy)

	encoded, err := Encode(TypeIndoorBikeData, m)
	require.NoError(t, err)
	require.Equal(t, data, encoded)
}

func TestIndoorBikeTimeFields(t *testing.T) {
	// More Data set (no speed), elapsed and remaining time flagged:
	// bits 11 and 12 live in the second flags byte.
	data := []byte{0x01, 0x18, 0x84, 0x03, 0x2C, 0x01}
	outcome := Decode(TypeIndoorBikeData, data)
	require.True(t, outcome.Success)

	m := outcome.Value.(*IndoorBikeData)
	require.Nil(t, m.Speed)
	require.Equal(t, ptr(uint16(900)), m.ElapsedTime)
	require.Equal(t, ptr(uint16(300)), m.RemainingTime)

	encoded, err := Encode(TypeIndoorBikeData, m)
	require.NoError(t, err)
	require.Equal(t, data, encoded)
}

func TestIndoorBikeNegativeValues(t *testing.T) {
	m := &IndoorBikeData{
		Speed:      ptr(uint16(0)),
		Resistance: ptr(int16(-5)),
		Power:      ptr(int16(-30)),
	}

	data, err := Encode(TypeIndoorBikeData, m)
	require.NoError(t, err)

	outcome := Decode(TypeIndoorBikeData, data)
	require.True(t, outcome.Success)
	require.Equal(t, m, outcome.Value)
}
