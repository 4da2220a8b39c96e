package schedule

import "errors"

// ErrNoFreePair is returned when no room has a free provider for the
// requested slot. The caller surfaces this as a distinct condition: by the
// time allocation runs, the patient record has already been created
// upstream and is not rolled back.
var ErrNoFreePair = errors.New("schedule: no free room/provider pair for requested slot")

// Allocate selects a room/provider pair for the requested slot using
// deterministic first-fit: rooms in fixed priority order, then providers
// in fixed priority order within the first free room. Repeated calls
// against identical occupancy always return the same pair.
//
// Occupancy is rebuilt from the supplied visit snapshot over the full
// static working-hours slot universe for both rooms, exactly as the
// availability path does in degraded mode. There is no reservation or
// lock against the upstream system; a concurrent booking can still win
// the slot between this check and the subsequent visit creation.
func Allocate(p Params, slot string, visits []VisitEntry) (Pair, error) {
	universe := StaticSlots(p.WorkStartHour, p.WorkEndHour, p.SlotMinutes)
	occ := BuildOccupancy(visits, map[string][]string{
		p.Room1ID: universe,
		p.Room2ID: append([]string(nil), universe...),
	}, p.ProviderIDs, p.SlotMinutes)

	for _, roomID := range []string{p.Room1ID, p.Room2ID} {
		if !occ.RoomFree(roomID, slot) {
			continue
		}
		for _, providerID := range p.ProviderIDs {
			if providerID == "" {
				continue
			}
			if occ.ProviderFree(providerID, slot) {
				return Pair{RoomID: roomID, ProviderID: providerID}, nil
			}
		}
	}
	return Pair{}, ErrNoFreePair
}
