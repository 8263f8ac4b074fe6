// Package gattkit decodes and encodes Bluetooth GATT characteristic
// payloads.
//
// GATT characteristics are compact little-endian binary structures whose
// layout is steered by a leading flags field: each flag bit gates the
// presence of one or more optional fields. gattkit implements codecs for
// a set of SIG-defined characteristics on top of shared primitives for
// little-endian scalars, bit fields, and IEEE-11073 medical floats.
//
// # Core Features
//
//   - Partial-success decoding: malformed or out-of-range fields are
//     reported per field without discarding the rest of the payload
//   - Context-dependent decoding via decoded sibling characteristics
//     (e.g. CGM Feature steering CGM Measurement CRC handling)
//   - IEEE-11073 SFLOAT/FLOAT with NaN/±Inf/NRes sentinel handling
//   - A characteristic registry with full 128-bit UUID expansion
//   - Compressed capture logs for recording and replaying sessions
//
// # Basic Usage
//
// Decoding a payload received from a notification:
//
//	import "github.com/gattkit/gattkit"
//
//	outcome := gattkit.Decode(characteristic.TypeHeartRateMeasurement, payload)
//	if !outcome.Success {
//	    for _, fe := range outcome.FieldErrors {
//	        log.Printf("field %s at offset %d: %v", fe.Field, fe.Offset, fe.Reason)
//	    }
//	}
//	hr := outcome.Value.(*characteristic.HeartRateMeasurement)
//
// Encoding is the strict inverse:
//
//	payload, err := gattkit.Encode(characteristic.TypeBatteryLevel,
//	    &characteristic.BatteryLevel{Percent: 87})
//
// Recording a session:
//
//	enc, _ := gattkit.NewCaptureEncoder(time.Now())
//	enc.AddOutcome(time.Now(), outcome)
//	blob, _ := enc.Finish()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the
// characteristic, registry, and capture packages, simplifying the most
// common use cases. For fine-grained control, use those packages
// directly.
package gattkit

import (
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/gattkit/gattkit/capture"
	"github.com/gattkit/gattkit/characteristic"
	"github.com/gattkit/gattkit/registry"
)

// Decode decodes one characteristic payload. It never panics on
// malformed input; all failure modes are reported in the ParseOutcome.
//
// Options:
//   - characteristic.WithContext(ctx) supplies decoded sibling
//     characteristics for context-dependent codecs
//   - characteristic.WithRecordCRC(policy) sets the trailing-CRC policy
//     for segmented record types
//   - characteristic.WithTrace() records a per-step decode trace
func Decode(t characteristic.Type, data []byte, opts ...characteristic.DecodeOption) *characteristic.ParseOutcome {
	return characteristic.Decode(t, data, opts...)
}

// DecodeUUID decodes a payload announced under a full 128-bit UUID,
// resolving SIG base UUIDs back to their 16-bit characteristic type.
// The second return is false for vendor-specific UUIDs.
func DecodeUUID(u uuid.UUID, data []byte, opts ...characteristic.DecodeOption) (*characteristic.ParseOutcome, bool) {
	t, ok := registry.ShortUUID(u)
	if !ok {
		return nil, false
	}

	return characteristic.Decode(t, data, opts...), true
}

// Encode serializes a characteristic value to its wire form. Unlike
// Decode it is strict: any unrepresentable field fails the whole encode.
func Encode(t characteristic.Type, v characteristic.Value) ([]byte, error) {
	return characteristic.Encode(t, v)
}

// Lookup returns the registry descriptor for a characteristic type:
// its full UUID, display name, unit, and value kind.
func Lookup(t characteristic.Type) (*registry.Descriptor, bool) {
	return registry.Lookup(t)
}

// NewCaptureEncoder creates a capture log encoder for a session starting
// at startTime. By default the entry payload is S2-compressed; use
// capture.WithCompression to select another codec.
func NewCaptureEncoder(startTime time.Time, opts ...capture.EncoderOption) (*capture.Encoder, error) {
	return capture.NewEncoder(startTime, opts...)
}

// NewCaptureDecoder creates a decoder for reading a capture log blob
// produced by a capture Encoder.
func NewCaptureDecoder(blob []byte) (*capture.Decoder, error) {
	return capture.NewDecoder(blob)
}
