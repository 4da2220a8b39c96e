package cliniccards

import (
	"encoding/json"
	"strings"
)

// FlexID decodes an identifier the CRM may emit as either a JSON string
// or a number.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*f = FlexID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// ScheduleSpace is one raw shift or block record from the CRM schedule.
// The room reference arrives under any of three field names depending on
// the endpoint version.
type ScheduleSpace struct {
	Type               string `json:"type"`
	SpaceStart         string `json:"space_start"` // "YYYY-MM-DD HH:mm:ss"
	SpaceEnd           string `json:"space_end"`
	ScheduleCabinetsID FlexID `json:"schedule_cabinets_id"`
	CabinetID          FlexID `json:"cabinet_id"`
	ScheduleCabinetID  FlexID `json:"schedule_cabinet_id"`
}

// RoomRef resolves the room attribution, first non-empty alias wins.
// Empty means the record cannot be attributed to a room.
func (s ScheduleSpace) RoomRef() string {
	for _, id := range []FlexID{s.ScheduleCabinetsID, s.CabinetID, s.ScheduleCabinetID} {
		if id != "" {
			return id.String()
		}
	}
	return ""
}

// Visit is an existing appointment. Either the combined visit_start/
// visit_end timestamps or the split time_start/time_end fields are
// present.
type Visit struct {
	CabinetID  FlexID `json:"cabinet_id"`
	DoctorID   FlexID `json:"doctor_id"`
	VisitStart string `json:"visit_start,omitempty"` // "YYYY-MM-DD HH:mm:ss"
	VisitEnd   string `json:"visit_end,omitempty"`
	TimeStart  string `json:"time_start,omitempty"` // "HH:mm"
	TimeEnd    string `json:"time_end,omitempty"`
}

// NewPatient is the payload for creating a patient record.
type NewPatient struct {
	Firstname        string `json:"firstname"`
	Lastname         string `json:"lastname"`
	Phone            string `json:"phone"`
	Email            string `json:"email,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Address          string `json:"address,omitempty"`
	Note             string `json:"note"`
	DateCreated      string `json:"date_created"`
	PreferredContact string `json:"preferred_contact"`
}

// NewVisit is the payload for creating a visit.
type NewVisit struct {
	Status    string `json:"status"`
	PatientID string `json:"patient_id"`
	CabinetID string `json:"cabinet_id"`
	DoctorID  string `json:"doctor_id"`
	Note      string `json:"note"`
	Date      string `json:"date"`
	TimeStart string `json:"time_start"`
	TimeEnd   string `json:"time_end"`
}

// listEnvelope is the standard CRM list response wrapper.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}
