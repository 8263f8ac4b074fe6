package characteristic

import (
	"testing"

	"github.com/gattkit/gattkit/errs"
	"github.com/stretchr/testify/require"
)

func TestTxPowerLevel(t *testing.T) {
	t.Run("negative dbm", func(t *testing.T) {
		outcome := Decode(TypeTxPowerLevel, []byte{0xF8})
		require.True(t, outcome.Success)
		require.Equal(t, &TxPowerLevel{DBm: -8}, outcome.Value)
	})

	t.Run("out of range", func(t *testing.T) {
		outcome := Decode(TypeTxPowerLevel, []byte{100})
		require.False(t, outcome.Success)
		require.ErrorIs(t, outcome.FirstError(), errs.ErrValueOutOfRange)
	})
}

func TestAppearance(t *testing.T) {
	// Generic watch category.
	outcome := Decode(TypeAppearance, []byte{0xC0, 0x00})
	require.True(t, outcome.Success)
	require.Equal(t, &Appearance{Category: 192}, outcome.Value)
}
