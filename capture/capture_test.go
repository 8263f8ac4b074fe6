package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gattkit/gattkit/characteristic"
	"github.com/gattkit/gattkit/errs"
	"github.com/gattkit/gattkit/format"
)

func sessionStart() time.Time {
	return time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
}

func collect(t *testing.T, d *Decoder) []Entry {
	t.Helper()

	var entries []Entry
	for e := range d.All() {
		entries = append(entries, e)
	}
	require.NoError(t, d.Err())

	return entries
}

func TestCaptureRoundTrip(t *testing.T) {
	start := sessionStart()

	enc, err := NewEncoder(start)
	require.NoError(t, err)

	require.NoError(t, enc.Add(start.Add(100*time.Millisecond), characteristic.TypeBatteryLevel, []byte{0x5F}, true))
	require.NoError(t, enc.Add(start.Add(250*time.Millisecond), characteristic.TypeHeartRateMeasurement, []byte{0x00, 0x48}, true))
	require.NoError(t, enc.Add(start.Add(2*time.Second), characteristic.TypeBatteryLevel, []byte{}, false))
	require.Equal(t, 3, enc.Count())

	blob, err := enc.Finish()
	require.NoError(t, err)

	dec, err := NewDecoder(blob)
	require.NoError(t, err)
	require.Equal(t, 3, dec.Count())
	require.Equal(t, format.CompressionS2, dec.Header().Compression())
	require.True(t, dec.Header().StartTimeAsTime().Equal(start))

	entries := collect(t, dec)
	require.Len(t, entries, 3)

	require.True(t, entries[0].CapturedAt.Equal(start.Add(100*time.Millisecond)))
	require.Equal(t, characteristic.TypeBatteryLevel, entries[0].Type)
	require.Equal(t, []byte{0x5F}, entries[0].Raw)
	require.True(t, entries[0].OK)

	require.Equal(t, characteristic.TypeHeartRateMeasurement, entries[1].Type)
	require.Equal(t, []byte{0x00, 0x48}, entries[1].Raw)

	require.True(t, entries[2].CapturedAt.Equal(start.Add(2*time.Second)))
	require.Empty(t, entries[2].Raw)
	require.False(t, entries[2].OK)
}

func TestCaptureCompressionVariants(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionZstd,
	}

	start := sessionStart()
	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			enc, err := NewEncoder(start, WithCompression(ct))
			require.NoError(t, err)

			for i := 0; i < 50; i++ {
				at := start.Add(time.Duration(i) * time.Second)
				require.NoError(t, enc.Add(at, characteristic.TypeBatteryLevel, []byte{uint8(100 - i)}, true))
			}

			blob, err := enc.Finish()
			require.NoError(t, err)

			dec, err := NewDecoder(blob)
			require.NoError(t, err)
			require.Equal(t, ct, dec.Header().Compression())

			entries := collect(t, dec)
			require.Len(t, entries, 50)
			require.Equal(t, []byte{51}, entries[49].Raw)
		})
	}
}

func TestCaptureAddOutcome(t *testing.T) {
	start := sessionStart()

	enc, err := NewEncoder(start)
	require.NoError(t, err)

	good := characteristic.Decode(characteristic.TypeBatteryLevel, []byte{0x64})
	require.True(t, good.Success)
	require.NoError(t, enc.AddOutcome(start.Add(time.Second), good))

	bad := characteristic.Decode(characteristic.TypeBatteryLevel, []byte{0x96})
	require.False(t, bad.Success)
	require.NoError(t, enc.AddOutcome(start.Add(2*time.Second), bad))

	blob, err := enc.Finish()
	require.NoError(t, err)

	dec, err := NewDecoder(blob)
	require.NoError(t, err)

	entries := collect(t, dec)
	require.Len(t, entries, 2)
	require.Equal(t, []byte{0x64}, entries[0].Raw)
	require.True(t, entries[0].OK)
	require.Equal(t, []byte{0x96}, entries[1].Raw)
	require.False(t, entries[1].OK)
}

func TestCaptureEmptySession(t *testing.T) {
	enc, err := NewEncoder(sessionStart())
	require.NoError(t, err)

	blob, err := enc.Finish()
	require.NoError(t, err)

	dec, err := NewDecoder(blob)
	require.NoError(t, err)
	require.Equal(t, 0, dec.Count())
	require.Empty(t, collect(t, dec))
}

func TestCaptureAddRejectsBadEntries(t *testing.T) {
	start := sessionStart()

	enc, err := NewEncoder(start)
	require.NoError(t, err)

	err = enc.Add(start.Add(-time.Second), characteristic.TypeBatteryLevel, []byte{0x64}, true)
	require.ErrorIs(t, err, errs.ErrInvalidCaptureEntry)

	err = enc.Add(start.Add(50*24*time.Hour), characteristic.TypeBatteryLevel, []byte{0x64}, true)
	require.ErrorIs(t, err, errs.ErrInvalidCaptureEntry)

	require.Equal(t, 0, enc.Count())
}

func TestNewDecoderRejectsBadBlobs(t *testing.T) {
	t.Run("truncated header", func(t *testing.T) {
		_, err := NewDecoder(make([]byte, HeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidCaptureHeader)
	})

	t.Run("bad magic", func(t *testing.T) {
		enc, err := NewEncoder(sessionStart())
		require.NoError(t, err)
		blob, err := enc.Finish()
		require.NoError(t, err)

		blob[1] = 0x00
		_, err = NewDecoder(blob)
		require.ErrorIs(t, err, errs.ErrInvalidCaptureHeader)
	})

	t.Run("payload size mismatch", func(t *testing.T) {
		enc, err := NewEncoder(sessionStart())
		require.NoError(t, err)
		require.NoError(t, enc.Add(sessionStart(), characteristic.TypeBatteryLevel, []byte{0x64}, true))
		blob, err := enc.Finish()
		require.NoError(t, err)

		_, err = NewDecoder(blob[:len(blob)-1])
		require.ErrorIs(t, err, errs.ErrInvalidCaptureHeader)
	})
}

func TestDecoderReportsTruncatedEntry(t *testing.T) {
	enc, err := NewEncoder(sessionStart(), WithCompression(format.CompressionNone))
	require.NoError(t, err)
	require.NoError(t, enc.Add(sessionStart(), characteristic.TypeBatteryLevel, []byte{0x64}, true))

	blob, err := enc.Finish()
	require.NoError(t, err)

	// Claim a second entry that the payload does not contain.
	blob[12] = 2

	dec, err := NewDecoder(blob)
	require.NoError(t, err)

	var entries []Entry
	for e := range dec.All() {
		entries = append(entries, e)
	}
	require.Len(t, entries, 1)
	require.ErrorIs(t, dec.Err(), errs.ErrInvalidCaptureEntry)
}
