package value

import (
	"math"
	"time"
)

const maxTime = 8.64e15

// Date is a point in time stored as milliseconds since the Unix epoch. NaN marks an invalid date.
// Calendar accessors operate in UTC.
type Date struct {
	ms float64
}

// NewDate returns a date for t, truncated to milliseconds.
func NewDate(t time.Time) *Date {
	return &Date{ms: float64(t.UnixMilli())}
}

// DateAt returns a date at the given millisecond timestamp.
func DateAt(ms float64) *Date {
	d := &Date{}
	d.SetTime(ms)
	return d
}

// Time returns the millisecond timestamp.
func (d *Date) Time() float64 {
	return d.ms
}

// SetTime replaces the timestamp, clipping out-of-range values to NaN.
func (d *Date) SetTime(ms float64) float64 {
	if math.IsNaN(ms) || math.Abs(ms) > maxTime {
		d.ms = math.NaN()
		return d.ms
	}
	d.ms = math.Trunc(ms)
	return d.ms
}

// Valid reports whether the date holds a real timestamp.
func (d *Date) Valid() bool {
	return !math.IsNaN(d.ms)
}

// GoTime converts the date to a UTC time.Time. Invalid dates convert to the zero time.
func (d *Date) GoTime() time.Time {
	if !d.Valid() {
		return time.Time{}
	}
	return time.UnixMilli(int64(d.ms)).UTC()
}

// ISOString renders the date in the simplified ISO 8601 form.
func (d *Date) ISOString() string {
	if !d.Valid() {
		return "Invalid Date"
	}
	return d.GoTime().Format("2006-01-02T15:04:05.000Z")
}

func (d *Date) String() string { return d.ISOString() }

type dateField int

const (
	fieldYear dateField = iota
	fieldMonth
	fieldDay
	fieldHours
	fieldMinutes
	fieldSeconds
	fieldMillis
)

func (d *Date) field(f dateField) float64 {
	if !d.Valid() {
		return math.NaN()
	}
	t := d.GoTime()
	switch f {
	case fieldYear:
		return float64(t.Year())
	case fieldMonth:
		return float64(t.Month() - 1)
	case fieldDay:
		return float64(t.Day())
	case fieldHours:
		return float64(t.Hour())
	case fieldMinutes:
		return float64(t.Minute())
	case fieldSeconds:
		return float64(t.Second())
	}
	return float64(t.Nanosecond() / int(time.Millisecond))
}

// setField replaces one calendar field, letting time.Date normalize overflow.
func (d *Date) setField(f dateField, v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		d.ms = math.NaN()
		return d.ms
	}
	t := d.GoTime()
	if !d.Valid() {
		if f != fieldYear {
			return d.ms
		}
		t = time.Unix(0, 0).UTC()
	}
	parts := [...]int{t.Year(), int(t.Month()) - 1, t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond() / int(time.Millisecond)}
	parts[f] = int(v)
	nt := time.Date(parts[0], time.Month(parts[1]+1), parts[2], parts[3], parts[4], parts[5], parts[6]*int(time.Millisecond), time.UTC)
	return d.SetTime(float64(nt.UnixMilli()))
}
