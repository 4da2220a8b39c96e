package cliniccards

import (
	"strings"
	"time"

	"github.com/smilecare/booking-api/internal/schedule"
)

const crmTimestampLayout = "2006-01-02 15:04:05"

// ScheduleEntries converts raw schedule spaces into engine entries with
// endpoints in minutes relative to the target day's midnight. Records
// whose timestamps do not parse are dropped; records without a room
// attribution are kept and skipped later by the builder.
func ScheduleEntries(spaces []ScheduleSpace, date string) []schedule.ScheduleEntry {
	dayStart, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}
	entries := make([]schedule.ScheduleEntry, 0, len(spaces))
	for _, s := range spaces {
		start, okStart := minutesIntoDay(s.SpaceStart, dayStart)
		end, okEnd := minutesIntoDay(s.SpaceEnd, dayStart)
		if !okStart || !okEnd {
			continue
		}
		entries = append(entries, schedule.ScheduleEntry{
			RoomID: s.RoomRef(),
			Label:  s.Type,
			Start:  start,
			End:    end,
		})
	}
	return entries
}

// VisitEntries converts visits into engine entries. The start time comes
// from the combined visit_start timestamp when present, otherwise from
// the split time_start field; the same applies to the end. Visits with
// no parseable start are dropped. A missing end stays zero and defaults
// inside the engine.
func VisitEntries(visits []Visit) []schedule.VisitEntry {
	entries := make([]schedule.VisitEntry, 0, len(visits))
	for _, v := range visits {
		start, ok := visitClock(v.VisitStart, v.TimeStart)
		if !ok {
			continue
		}
		entry := schedule.VisitEntry{
			RoomID:     v.CabinetID.String(),
			ProviderID: v.DoctorID.String(),
			Start:      start,
		}
		if end, ok := visitClock(v.VisitEnd, v.TimeEnd); ok {
			entry.End = end
		}
		entries = append(entries, entry)
	}
	return entries
}

// minutesIntoDay parses a CRM timestamp and positions it relative to the
// target day's midnight. Timestamps on neighboring days yield values
// outside [0, 1440) and get clipped by the engine.
func minutesIntoDay(ts string, dayStart time.Time) (int, bool) {
	t, err := time.Parse(crmTimestampLayout, strings.TrimSpace(ts))
	if err != nil {
		return 0, false
	}
	return int(t.Sub(dayStart).Minutes()), true
}

// visitClock extracts a time of day in minutes, preferring the combined
// timestamp's clock part over the split field.
func visitClock(timestamp, clock string) (int, bool) {
	s := strings.TrimSpace(clock)
	if ts := strings.TrimSpace(timestamp); ts != "" {
		if _, clockPart, found := strings.Cut(ts, " "); found {
			s = clockPart
		}
	}
	if s == "" {
		return 0, false
	}
	m, err := schedule.ParseClock(s)
	if err != nil {
		return 0, false
	}
	return m, true
}
