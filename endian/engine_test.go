package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	// GATT wire order: least significant byte first
	buf := le.AppendUint16(nil, 0x2A19)
	require.Equal(t, []byte{0x19, 0x2A}, buf)

	buf = be.AppendUint16(nil, 0x2A19)
	require.Equal(t, []byte{0x2A, 0x19}, buf)

	require.Equal(t, uint16(0x2A19), le.Uint16([]byte{0x19, 0x2A}))
	require.Equal(t, uint16(0x2A19), be.Uint16([]byte{0x2A, 0x19}))
}
