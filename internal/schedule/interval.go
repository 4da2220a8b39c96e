// Package schedule implements the availability engine for a two-room,
// two-provider clinic: open-interval construction from raw shift/block
// records, slot generation, occupancy tracking, and room/provider
// allocation. Everything in this package is pure over its inputs; all
// CRM I/O happens in the calling service.
package schedule

import "fmt"

// minutesPerDay bounds every interval to one calendar day.
const minutesPerDay = 24 * 60

// Interval is a half-open time range [Start, End) expressed in minutes
// since midnight of the target day. Values outside [0, 1440) are allowed
// before clipping so that records spilling over midnight can be attributed
// to the day they touch.
type Interval struct {
	Start int
	End   int
}

// Clip truncates the interval to [lo, hi).
func (iv Interval) Clip(lo, hi int) Interval {
	if iv.Start < lo {
		iv.Start = lo
	}
	if iv.End > hi {
		iv.End = hi
	}
	return iv
}

// Overlaps reports whether two half-open intervals intersect. Touching
// intervals (a.End == b.Start) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Empty reports whether the interval contains no time at all.
func (iv Interval) Empty() bool {
	return iv.End <= iv.Start
}

// Subtract removes every blocking interval from the open set. Each block
// splits any open interval it intersects into the surviving left and/or
// right remainders; opens it does not touch pass through unchanged. The
// result does not depend on the order of blocks.
func Subtract(opens, blocks []Interval) []Interval {
	intervals := make([]Interval, 0, len(opens))
	for _, iv := range opens {
		if !iv.Empty() {
			intervals = append(intervals, iv)
		}
	}
	for _, block := range blocks {
		next := make([]Interval, 0, len(intervals))
		for _, iv := range intervals {
			if !iv.Overlaps(block) {
				next = append(next, iv)
				continue
			}
			if block.Start > iv.Start {
				next = append(next, Interval{Start: iv.Start, End: block.Start})
			}
			if block.End < iv.End {
				next = append(next, Interval{Start: block.End, End: iv.End})
			}
		}
		intervals = next
	}
	return intervals
}

// FormatClock renders minutes since midnight as zero-padded HH:MM.
func FormatClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("schedule: invalid clock time %q", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("schedule: clock time %q out of range", s)
	}
	return h*60 + m, nil
}
