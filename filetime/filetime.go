// Package filetime converts between time.Time and Windows FILETIME
// values: 64-bit counts of 100-nanosecond intervals since
// 1601-01-01 00:00:00 UTC.
package filetime

import "time"

const (
	// epochOffset is the number of 100ns intervals between the Windows
	// epoch (1601-01-01) and the Unix epoch (1970-01-01).
	epochOffset = 116444736000000000

	// intervalsPerSecond is the number of 100ns intervals in a second.
	intervalsPerSecond = 10_000_000
)

// FromTime converts t to a FILETIME tick count. Sub-100ns precision is
// truncated.
func FromTime(t time.Time) uint64 {
	return uint64(t.Unix())*intervalsPerSecond + uint64(t.Nanosecond()/100) + epochOffset
}

// ToTime converts a FILETIME tick count to a UTC time.Time. Tick
// counts before the Unix epoch, back to 1601, are handled.
func ToTime(ft uint64) time.Time {
	d := int64(ft) - epochOffset

	secs := d / intervalsPerSecond
	rem := d % intervalsPerSecond
	if rem < 0 {
		secs--
		rem += intervalsPerSecond
	}

	return time.Unix(secs, rem*100).UTC()
}
