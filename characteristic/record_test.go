package characteristic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBloodPressureRecordSegmentation(t *testing.T) {
	// header: first+last, counter 5.
	data := []byte{0x17, 0xAA, 0xBB, 0xCC, 0x34, 0x12}

	outcome := Decode(TypeBloodPressureRecord, data, WithRecordCRC(CRCAbsent))
	require.True(t, outcome.Success)

	m := outcome.Value.(*BloodPressureRecord)
	require.True(t, m.First)
	require.True(t, m.Last)
	require.Equal(t, uint8(5), m.Counter)
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0x34, 0x12}, m.Payload)
	require.Nil(t, m.WithCRC)
}

func TestBloodPressureRecordCRCPolicy(t *testing.T) {
	data := []byte{0x01, 0xAA, 0xBB, 0xCC, 0x34, 0x12}

	t.Run("absent keeps whole payload", func(t *testing.T) {
		m := Decode(TypeBloodPressureRecord, data, WithRecordCRC(CRCAbsent)).Value.(*BloodPressureRecord)
		require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0x34, 0x12}, m.Payload)
		require.Nil(t, m.WithCRC)
	})

	t.Run("present splits the tail", func(t *testing.T) {
		m := Decode(TypeBloodPressureRecord, data, WithRecordCRC(CRCPresent)).Value.(*BloodPressureRecord)
		require.Nil(t, m.Payload)
		require.NotNil(t, m.WithCRC)
		require.Equal(t, []byte{0xAA, 0xBB, 0xCC}, m.WithCRC.Payload)
		require.Equal(t, uint16(0x1234), m.WithCRC.CRC)
	})

	t.Run("unknown returns both candidates", func(t *testing.T) {
		m := Decode(TypeBloodPressureRecord, data).Value.(*BloodPressureRecord)
		require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0x34, 0x12}, m.Payload)
		require.NotNil(t, m.WithCRC)
		require.Equal(t, []byte{0xAA, 0xBB, 0xCC}, m.WithCRC.Payload)
		require.Equal(t, uint16(0x1234), m.WithCRC.CRC)
	})

	t.Run("short tail cannot be a crc", func(t *testing.T) {
		m := Decode(TypeBloodPressureRecord, []byte{0x01, 0xAA}, WithRecordCRC(CRCPresent)).Value.(*BloodPressureRecord)
		require.Equal(t, []byte{0xAA}, m.Payload)
		require.Nil(t, m.WithCRC)
	})
}

func TestBloodPressureRecordEncode(t *testing.T) {
	t.Run("payload form", func(t *testing.T) {
		data, err := Encode(TypeBloodPressureRecord, &BloodPressureRecord{
			Last:    true,
			Counter: 9,
			Payload: []byte{0x01, 0x02},
		})
		require.NoError(t, err)
		require.Equal(t, []byte{0x26, 0x01, 0x02}, data)
	})

	t.Run("crc form appends the tail", func(t *testing.T) {
		data, err := Encode(TypeBloodPressureRecord, &BloodPressureRecord{
			First:   true,
			Counter: 1,
			WithCRC: &RecordCRCCandidate{Payload: []byte{0x01}, CRC: 0xBEEF},
		})
		require.NoError(t, err)
		require.Equal(t, []byte{0x05, 0x01, 0xEF, 0xBE}, data)
	})

	t.Run("both candidates encode identically", func(t *testing.T) {
		original := []byte{0x01, 0xAA, 0xBB, 0xCC, 0x34, 0x12}
		m := Decode(TypeBloodPressureRecord, original).Value.(*BloodPressureRecord)

		data, err := Encode(TypeBloodPressureRecord, m)
		require.NoError(t, err)
		require.Equal(t, original, data)
	})
}
