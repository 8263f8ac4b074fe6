package characteristic

import (
	"testing"

	"github.com/gattkit/gattkit/errs"
	"github.com/stretchr/testify/require"
)

func TestPowerStatePacking(t *testing.T) {
	ps := PowerState{
		BatteryPresent:     true,
		WiredExternalPower: 1,
		ChargeState:        1,
		ChargeLevel:        2,
		ChargingType:       3,
		ChargingFault:      0,
	}

	word, err := packPowerState(ps)
	require.NoError(t, err)
	// bit0 | 1<<1 | 1<<5 | 2<<7 | 3<<9.
	require.Equal(t, uint16(0x0723), word)

	back, err := unpackPowerState(word)
	require.NoError(t, err)
	require.Equal(t, ps, back)
}

func TestBatteryLevelStatusDecode(t *testing.T) {
	t.Run("mandatory power state only", func(t *testing.T) {
		outcome := Decode(TypeBatteryLevelStatus, []byte{0x00, 0x23, 0x07})
		require.True(t, outcome.Success)

		m := outcome.Value.(*BatteryLevelStatus)
		require.True(t, m.Power.BatteryPresent)
		require.Equal(t, uint8(2), m.Power.ChargeLevel)
		require.Nil(t, m.Identifier)
		require.Nil(t, m.Level)
	})

	t.Run("all optional fields", func(t *testing.T) {
		outcome := Decode(TypeBatteryLevelStatus, []byte{0x07, 0x01, 0x00, 0x02, 0x00, 76, 0x01})
		require.True(t, outcome.Success)

		m := outcome.Value.(*BatteryLevelStatus)
		require.Equal(t, uint16(2), *m.Identifier)
		require.Equal(t, uint8(76), *m.Level)
		require.Equal(t, uint8(0x01), *m.AdditionalStatus)
	})

	t.Run("level above 100 is a range violation", func(t *testing.T) {
		outcome := Decode(TypeBatteryLevelStatus, []byte{0x02, 0x01, 0x00, 120})
		require.False(t, outcome.Success)
		require.NoError(t, outcome.Err)
		require.Len(t, outcome.FieldErrors, 1)
		require.ErrorIs(t, outcome.FieldErrors[0].Reason, errs.ErrValueOutOfRange)
	})
}
