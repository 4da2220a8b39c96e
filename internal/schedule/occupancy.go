package schedule

// VisitEntry is an existing visit reduced to what occupancy tracking
// needs. Times are minutes since midnight; End <= Start means the CRM did
// not report an end and the visit defaults to Start plus one slot.
type VisitEntry struct {
	RoomID     string
	ProviderID string
	Start      int
	End        int
}

// Occupancy records which slots are already consumed, per room and per
// provider. It is rebuilt from scratch on every request; nothing is
// cached across calls.
type Occupancy struct {
	byRoom     map[string]map[string]bool
	byProvider map[string]map[string]bool
}

// RoomFree reports whether the room has no visit overlapping the slot.
func (o Occupancy) RoomFree(roomID, slot string) bool {
	return !o.byRoom[roomID][slot]
}

// ProviderFree reports whether the provider has no visit overlapping the
// slot, in either room.
func (o Occupancy) ProviderFree(providerID, slot string) bool {
	return !o.byProvider[providerID][slot]
}

// RoomSlots returns the occupied slots of one room, sorted.
func (o Occupancy) RoomSlots(roomID string) []string {
	return sortedKeys(o.byRoom[roomID])
}

// BuildOccupancy marks occupied slots from existing visits using half-open
// overlap semantics: a slot of width duration starting at s is occupied by
// a visit [v.Start, v.End) iff the two ranges intersect.
//
// Room occupancy is evaluated against that room's own slot list. Provider
// occupancy is evaluated against the union of every room's slots, because
// a provider can be scheduled in either room; this asymmetry is
// intentional.
func BuildOccupancy(visits []VisitEntry, slotsByRoom map[string][]string, providerIDs []string, duration int) Occupancy {
	occ := Occupancy{
		byRoom:     make(map[string]map[string]bool, len(slotsByRoom)),
		byProvider: make(map[string]map[string]bool, len(providerIDs)),
	}
	for roomID := range slotsByRoom {
		occ.byRoom[roomID] = make(map[string]bool)
	}
	for _, id := range providerIDs {
		if id != "" {
			occ.byProvider[id] = make(map[string]bool)
		}
	}

	union := make(map[string]bool)
	for _, slots := range slotsByRoom {
		for _, s := range slots {
			union[s] = true
		}
	}

	for _, v := range visits {
		visit := Interval{Start: v.Start, End: v.End}
		if visit.Empty() {
			visit.End = visit.Start + duration
		}

		if roomOcc, ok := occ.byRoom[v.RoomID]; ok {
			for _, s := range slotsByRoom[v.RoomID] {
				if slotOverlaps(s, duration, visit) {
					roomOcc[s] = true
				}
			}
		}

		if provOcc, ok := occ.byProvider[v.ProviderID]; ok {
			for s := range union {
				if slotOverlaps(s, duration, visit) {
					provOcc[s] = true
				}
			}
		}
	}
	return occ
}

func slotOverlaps(slot string, duration int, visit Interval) bool {
	start, err := ParseClock(slot)
	if err != nil {
		return false
	}
	return Interval{Start: start, End: start + duration}.Overlaps(visit)
}
