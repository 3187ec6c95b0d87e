package scheduling

import "time"

// Overlaps is the half-open interval intersection test used everywhere a
// booking is checked against another time range: [aStart, aEnd) intersects
// [bStart, bEnd). Back-to-back bookings do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
