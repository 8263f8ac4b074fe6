// Package encoding implements the primitive codecs every characteristic
// decoder is built from: bounds-checked fixed-width integer and float
// reads/writes, sub-byte bit-field extraction and packing, the IEEE-11073
// medical float formats (SFLOAT and FLOAT), and the 7-byte date-time
// layout shared by every timestamped characteristic.
//
// Reads go through a Reader, a bounds-checked cursor over the payload that
// fails deterministically with errs.ErrInsufficientData when fewer bytes
// remain than a primitive requires. Writes go through a Writer that
// appends primitives in wire order and range-checks values that do not
// occupy a full Go integer width (24-bit, 48-bit, medical floats).
//
// All operations are pure transformations of in-memory buffers: no I/O,
// no shared state, safe for concurrent use as long as each call operates
// on its own Reader or Writer.
package encoding
