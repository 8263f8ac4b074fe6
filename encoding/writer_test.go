package encoding

import (
	"testing"

	"github.com/gattkit/gattkit/endian"
	"github.com/gattkit/gattkit/errs"
	"github.com/stretchr/testify/require"
)

func TestWriter_Unsigned(t *testing.T) {
	w := NewLEWriter()
	defer w.Finish()

	w.AppendUint8(0x64)
	w.AppendUint16(300)
	require.NoError(t, w.AppendUint24(0x100001))
	w.AppendUint32(0xDEADBEEF)
	require.NoError(t, w.AppendUint48(0x800000000001))

	require.Equal(t, []byte{
		0x64,
		0x2C, 0x01,
		0x01, 0x00, 0x10,
		0xEF, 0xBE, 0xAD, 0xDE,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x80,
	}, w.Bytes())
}

func TestWriter_RangeChecks(t *testing.T) {
	w := NewLEWriter()
	defer w.Finish()

	require.ErrorIs(t, w.AppendUint24(MaxUint24+1), errs.ErrValueOutOfRange)
	require.ErrorIs(t, w.AppendUint48(MaxUint48+1), errs.ErrValueOutOfRange)
	require.ErrorIs(t, w.AppendSint24(MaxSint24+1), errs.ErrValueOutOfRange)
	require.ErrorIs(t, w.AppendSint24(MinSint24-1), errs.ErrValueOutOfRange)
	require.ErrorIs(t, w.AppendSint48(MaxSint48+1), errs.ErrValueOutOfRange)
	require.ErrorIs(t, w.AppendSint48(MinSint48-1), errs.ErrValueOutOfRange)

	// Failed appends must not leave partial bytes behind.
	require.Equal(t, 0, w.Len())
}

func TestWriter_SignedRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		s24  int32
		s48  int64
	}{
		{"negative", -8388608, -140737488355328},
		{"minus one", -1, -1},
		{"zero", 0, 0},
		{"positive max", 8388607, 140737488355327},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewLEWriter()
			require.NoError(t, w.AppendSint24(tt.s24))
			require.NoError(t, w.AppendSint48(tt.s48))
			data := w.Detach()

			r := NewLEReader(data)
			s24, err := r.Sint24()
			require.NoError(t, err)
			require.Equal(t, tt.s24, s24)

			s48, err := r.Sint48()
			require.NoError(t, err)
			require.Equal(t, tt.s48, s48)
		})
	}
}

func TestWriter_BigEndian(t *testing.T) {
	w := NewWriter(endian.GetBigEndianEngine())
	defer w.Finish()

	require.NoError(t, w.AppendUint24(0x010203))
	require.NoError(t, w.AppendUint48(0x010203040506))

	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06}, w.Bytes())
}

func TestWriter_CapturePool(t *testing.T) {
	w := NewCaptureWriter()
	defer w.Finish()

	// A capture payload can far exceed a single characteristic value.
	// Write past the value-pool discard threshold and verify content.
	chunk := []byte{0xA0, 0x0B, 0x00, 0x00, 0x19, 0x2A, 0x01, 0x01, 0x00, 0x64}
	for i := 0; i < 1024; i++ {
		w.AppendBytes(chunk)
	}

	require.Equal(t, 1024*len(chunk), w.Len())
	require.Equal(t, chunk, w.Bytes()[:len(chunk)])
	require.Equal(t, chunk, w.Bytes()[w.Len()-len(chunk):])
}

func TestWriter_PanicsAfterFinish(t *testing.T) {
	w := NewLEWriter()
	w.AppendUint8(1)
	w.Finish()

	require.Panics(t, func() { w.AppendUint8(2) })
	require.Panics(t, func() { w.Bytes() })
}

func TestWriter_Detach(t *testing.T) {
	w := NewLEWriter()
	w.AppendUint16(0x2A19)
	out := w.Detach()

	require.Equal(t, []byte{0x19, 0x2A}, out)
	// Detach releases the writer.
	require.Panics(t, func() { w.Len() })
}
