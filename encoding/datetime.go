package encoding

import (
	"fmt"
	"time"

	"github.com/gattkit/gattkit/errs"
)

// DateTimeLength is the wire size of the date-time layout: year uint16
// followed by month, day, hours, minutes and seconds as one byte each.
const DateTimeLength = 7

// DateTime is the decoded 7-byte GATT date-time. A zero Year, Month or Day
// means "unknown", per the characteristic definition.
type DateTime struct {
	Year    uint16
	Month   uint8
	Day     uint8
	Hours   uint8
	Minutes uint8
	Seconds uint8
}

// DateTimeFrom converts a time.Time to its wire representation, truncating
// sub-second precision.
func DateTimeFrom(t time.Time) DateTime {
	return DateTime{
		Year:    uint16(t.Year()),
		Month:   uint8(t.Month()),
		Day:     uint8(t.Day()),
		Hours:   uint8(t.Hour()),
		Minutes: uint8(t.Minute()),
		Seconds: uint8(t.Second()),
	}
}

// IsKnown reports whether the date part carries a real calendar date
// rather than the all-unknown sentinel.
func (dt DateTime) IsKnown() bool {
	return dt.Year != 0 && dt.Month != 0 && dt.Day != 0
}

// Time converts the decoded value to a time.Time in the given location.
// Unknown date parts produce the zero time.
func (dt DateTime) Time(loc *time.Location) time.Time {
	if !dt.IsKnown() {
		return time.Time{}
	}

	return time.Date(int(dt.Year), time.Month(dt.Month), int(dt.Day),
		int(dt.Hours), int(dt.Minutes), int(dt.Seconds), 0, loc)
}

// Validate checks the decoded fields against the characteristic's declared
// ranges: year 0 or 1582..9999, month 0..12, day 0..31, hours 0..23,
// minutes and seconds 0..59.
func (dt DateTime) Validate() error {
	if dt.Year != 0 && (dt.Year < 1582 || dt.Year > 9999) {
		return fmt.Errorf("%w: year %d", errs.ErrValueOutOfRange, dt.Year)
	}
	if dt.Month > 12 {
		return fmt.Errorf("%w: month %d", errs.ErrValueOutOfRange, dt.Month)
	}
	if dt.Day > 31 {
		return fmt.Errorf("%w: day %d", errs.ErrValueOutOfRange, dt.Day)
	}
	if dt.Hours > 23 {
		return fmt.Errorf("%w: hours %d", errs.ErrValueOutOfRange, dt.Hours)
	}
	if dt.Minutes > 59 {
		return fmt.Errorf("%w: minutes %d", errs.ErrValueOutOfRange, dt.Minutes)
	}
	if dt.Seconds > 59 {
		return fmt.Errorf("%w: seconds %d", errs.ErrValueOutOfRange, dt.Seconds)
	}

	return nil
}

func decodeDateTime(r *Reader) (DateTime, error) {
	var dt DateTime
	var err error

	if dt.Year, err = r.Uint16(); err != nil {
		return DateTime{}, err
	}
	if dt.Month, err = r.Uint8(); err != nil {
		return DateTime{}, err
	}
	if dt.Day, err = r.Uint8(); err != nil {
		return DateTime{}, err
	}
	if dt.Hours, err = r.Uint8(); err != nil {
		return DateTime{}, err
	}
	if dt.Minutes, err = r.Uint8(); err != nil {
		return DateTime{}, err
	}
	if dt.Seconds, err = r.Uint8(); err != nil {
		return DateTime{}, err
	}

	return dt, nil
}

func encodeDateTime(w *Writer, dt DateTime) error {
	if err := dt.Validate(); err != nil {
		return err
	}

	w.AppendUint16(dt.Year)
	w.AppendUint8(dt.Month)
	w.AppendUint8(dt.Day)
	w.AppendUint8(dt.Hours)
	w.AppendUint8(dt.Minutes)
	w.AppendUint8(dt.Seconds)

	return nil
}
