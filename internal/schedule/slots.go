package schedule

import "sort"

// SlotsFromIntervals discretizes open intervals into HH:MM start times at
// duration-minute increments. A candidate start is accepted only when the
// whole slot fits inside its interval. Duplicates arising from overlapping
// source intervals are collapsed; the result is sorted.
func SlotsFromIntervals(intervals []Interval, duration int) []string {
	if duration <= 0 {
		return nil
	}
	seen := make(map[string]bool)
	for _, iv := range intervals {
		for m := iv.Start; m+duration <= iv.End; m += duration {
			seen[FormatClock(m)] = true
		}
	}
	slots := make([]string, 0, len(seen))
	for s := range seen {
		slots = append(slots, s)
	}
	sort.Strings(slots)
	return slots
}

// StaticSlots generates every slot between startHour and endHour ignoring
// intervals entirely, stepping through each hour at duration-minute
// increments. This is the degraded mode used when upstream scheduling data
// is missing or malformed: assume the clinic is open all day rather than
// report zero availability.
func StaticSlots(startHour, endHour, duration int) []string {
	if duration <= 0 || duration > 60 {
		return nil
	}
	var slots []string
	for hour := startHour; hour < endHour; hour++ {
		for m := 0; m < 60; m += duration {
			slots = append(slots, FormatClock(hour*60+m))
		}
	}
	return slots
}
