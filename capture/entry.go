package capture

import (
	"time"

	"github.com/gattkit/gattkit/characteristic"
)

// Entry flag bits within the serialized entry.
const entryFlagOK = 0

// Entry is one captured characteristic payload: when it arrived, what
// type it was announced as, the raw wire bytes, and whether it decoded
// cleanly at capture time.
//
// Entries store raw bytes rather than decoded values so a log can be
// replayed through newer codecs, or through a context (paired Feature
// characteristics) that was not available during capture.
type Entry struct {
	// CapturedAt is when the payload was received.
	CapturedAt time.Time
	// Type is the characteristic the payload was announced as.
	Type characteristic.Type
	// Raw is the payload bytes as received.
	Raw []byte
	// OK records whether decoding succeeded at capture time.
	OK bool
}
