package encoding

// crc16Table is the CRC-16/CCITT table for polynomial 0x1021, as used by
// the GATT E2E-CRC fields (CGM, and the record-oriented health
// characteristics).
var crc16Table [256]uint16

func init() {
	for i := range crc16Table {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
		crc16Table[i] = crc
	}
}

// CRC16 computes the CRC-16/CCITT checksum (polynomial 0x1021, initial
// value 0xFFFF) over data. The result is appended little-endian on the
// wire like every other GATT field.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc = crc<<8 ^ crc16Table[uint8(crc>>8)^b]
	}

	return crc
}
