// Package endian provides byte order utilities for GATT payload encoding
// and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine
// interface. This enables cleaner API design and improved performance for
// binary data operations.
//
// # Basic Usage
//
// GATT characteristic values are little-endian on the wire, so most users
// should use GetLittleEndianEngine():
//
//	import "github.com/gattkit/gattkit/endian"
//
//	engine := endian.GetLittleEndianEngine()
//	r := encoding.NewReader(payload, engine)
//
// GetBigEndianEngine() is provided for the handful of legacy layouts and
// test fixtures written most-significant byte first.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian
// from the standard library, making it fully compatible with existing Go
// code while providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the GATT wire order.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
