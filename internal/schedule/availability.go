package schedule

import "sort"

// Params carries the clinic topology and slotting configuration into the
// engine. It is built once from application config and passed explicitly;
// the engine reads nothing from the environment.
type Params struct {
	Room1ID       string
	Room2ID       string
	ProviderIDs   []string // priority order; one or two entries
	WorkStartHour int
	WorkEndHour   int
	SlotMinutes   int
}

// Pair is a concrete room/provider combination eligible for a booking.
type Pair struct {
	RoomID     string `json:"roomId"`
	ProviderID string `json:"providerId"`
}

// IntervalView is an open interval rendered as clock times for API
// consumers.
type IntervalView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RoomSlotLists holds a per-room list of slots keyed by position in the
// fixed two-room topology.
type RoomSlotLists struct {
	Room1 []string `json:"room1"`
	Room2 []string `json:"room2"`
}

// RoomIntervalViews holds per-room open intervals for diagnostics.
type RoomIntervalViews struct {
	Room1 []IntervalView `json:"room1"`
	Room2 []IntervalView `json:"room2"`
}

// Availability is the computed result for one day.
type Availability struct {
	Date           string            `json:"date"`
	AvailableSlots []string          `json:"availableSlots"`
	TotalSlots     int               `json:"totalSlots"`
	OccupiedSlots  RoomSlotLists     `json:"occupiedSlots"`
	Intervals      RoomIntervalViews `json:"intervals"`
	FreePairs      map[string][]Pair `json:"freePairs"`
}

// ComputeAvailability runs the full pipeline for one day: build open
// intervals per room, discretize them into slots (falling back to static
// working hours when upstream data yields nothing), subtract occupancy,
// and enumerate every free room/provider pair per remaining slot.
func ComputeAvailability(p Params, date string, entries []ScheduleEntry, visits []VisitEntry) Availability {
	rooms := BuildOpenIntervals(entries)
	intervals1 := rooms[p.Room1ID]
	intervals2 := rooms[p.Room2ID]

	slots1 := SlotsFromIntervals(intervals1, p.SlotMinutes)
	slots2 := SlotsFromIntervals(intervals2, p.SlotMinutes)

	// Missing or malformed upstream data degrades to "open all day":
	// both rooms get the full working-hours interval and identical
	// static slot lists.
	if len(entries) == 0 || (len(slots1) == 0 && len(slots2) == 0) {
		fullDay := []Interval{{Start: p.WorkStartHour * 60, End: p.WorkEndHour * 60}}
		intervals1, intervals2 = fullDay, fullDay
		slots1 = StaticSlots(p.WorkStartHour, p.WorkEndHour, p.SlotMinutes)
		slots2 = append([]string(nil), slots1...)
	}

	occ := BuildOccupancy(visits, map[string][]string{
		p.Room1ID: slots1,
		p.Room2ID: slots2,
	}, p.ProviderIDs, p.SlotMinutes)

	available := make(map[string]bool)
	for _, s := range slots1 {
		if occ.RoomFree(p.Room1ID, s) {
			available[s] = true
		}
	}
	for _, s := range slots2 {
		if occ.RoomFree(p.Room2ID, s) {
			available[s] = true
		}
	}
	availableSlots := sortedKeys(available)

	freePairs := make(map[string][]Pair, len(availableSlots))
	for _, slot := range availableSlots {
		pairs := []Pair{}
		for _, roomID := range []string{p.Room1ID, p.Room2ID} {
			if !occ.RoomFree(roomID, slot) {
				continue
			}
			for _, providerID := range p.ProviderIDs {
				if providerID == "" {
					continue
				}
				if occ.ProviderFree(providerID, slot) {
					pairs = append(pairs, Pair{RoomID: roomID, ProviderID: providerID})
				}
			}
		}
		freePairs[slot] = pairs
	}

	return Availability{
		Date:           date,
		AvailableSlots: availableSlots,
		TotalSlots:     len(availableSlots),
		OccupiedSlots: RoomSlotLists{
			Room1: occ.RoomSlots(p.Room1ID),
			Room2: occ.RoomSlots(p.Room2ID),
		},
		Intervals: RoomIntervalViews{
			Room1: intervalViews(intervals1),
			Room2: intervalViews(intervals2),
		},
		FreePairs: freePairs,
	}
}

func intervalViews(intervals []Interval) []IntervalView {
	views := make([]IntervalView, 0, len(intervals))
	for _, iv := range intervals {
		views = append(views, IntervalView{Start: FormatClock(iv.Start), End: FormatClock(iv.End)})
	}
	return views
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
