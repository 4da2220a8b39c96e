package schedule

import "strings"

// openShiftLabel marks a record as bookable time. Every other label
// (clean-up, rest, maintenance, ...) blocks the room.
const openShiftLabel = "anonymous shift"

// ScheduleEntry is one raw shift or block record attributed to a room,
// with endpoints in minutes relative to the target day's midnight. The
// endpoints may fall outside the day; the builder clips them.
type ScheduleEntry struct {
	RoomID string
	Label  string
	Start  int
	End    int
}

// IsOpen classifies the entry by its free-text label.
func (e ScheduleEntry) IsOpen() bool {
	return strings.EqualFold(strings.TrimSpace(e.Label), openShiftLabel)
}

// BuildOpenIntervals groups raw records by room, clips them to the day,
// and subtracts every blocking interval from the open ones. Records
// without a room attribution are skipped. The result is invariant to
// input record order.
func BuildOpenIntervals(entries []ScheduleEntry) map[string][]Interval {
	type roomAccum struct {
		opens  []Interval
		blocks []Interval
	}
	byRoom := make(map[string]*roomAccum)
	for _, e := range entries {
		if e.RoomID == "" {
			continue
		}
		iv := Interval{Start: e.Start, End: e.End}.Clip(0, minutesPerDay)
		if iv.Empty() {
			continue
		}
		acc := byRoom[e.RoomID]
		if acc == nil {
			acc = &roomAccum{}
			byRoom[e.RoomID] = acc
		}
		if e.IsOpen() {
			acc.opens = append(acc.opens, iv)
		} else {
			acc.blocks = append(acc.blocks, iv)
		}
	}

	result := make(map[string][]Interval, len(byRoom))
	for roomID, acc := range byRoom {
		result[roomID] = Subtract(acc.opens, acc.blocks)
	}
	return result
}
