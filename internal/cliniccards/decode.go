package cliniccards

import (
	"encoding/json"
	"errors"
)

// ErrUnexpectedShape reports a CRM response that matches none of the
// accepted shapes when extracting an identifier. It is fatal for the
// request; nothing already written upstream is undone.
var ErrUnexpectedShape = errors.New("cliniccards: response shape not recognized")

// The CRM has emitted created-patient ids under several envelope shapes
// across versions. Decoding checks each named shape explicitly, in
// order, instead of probing arbitrary nestings.
type (
	dataObjectShape struct {
		Data idFields `json:"data"`
	}
	dataArrayShape struct {
		Data []idFields `json:"data"`
	}
	idFields struct {
		PatientID FlexID `json:"patient_id"`
		VisitID   FlexID `json:"visit_id"`
		ID        FlexID `json:"id"`
	}
)

func (f idFields) patientID() string {
	if f.PatientID != "" {
		return f.PatientID.String()
	}
	return f.ID.String()
}

func (f idFields) visitID() string {
	if f.VisitID != "" {
		return f.VisitID.String()
	}
	return f.ID.String()
}

// patientIDFromResponse extracts the created patient id. Accepted shapes:
// {"data":{"patient_id"|"id":...}}, {"data":[{"patient_id":...},...]},
// and the bare {"patient_id"|"id":...}.
func patientIDFromResponse(body []byte) (string, error) {
	var obj dataObjectShape
	if err := json.Unmarshal(body, &obj); err == nil {
		if id := obj.Data.patientID(); id != "" {
			return id, nil
		}
	}
	var arr dataArrayShape
	if err := json.Unmarshal(body, &arr); err == nil && len(arr.Data) > 0 {
		if id := arr.Data[0].patientID(); id != "" {
			return id, nil
		}
	}
	var bare idFields
	if err := json.Unmarshal(body, &bare); err == nil {
		if id := bare.patientID(); id != "" {
			return id, nil
		}
	}
	return "", ErrUnexpectedShape
}

// visitIDFromResponse extracts the created visit id when present. Unlike
// patient creation, a missing visit id is tolerated: the booking already
// exists in the CRM at this point.
func visitIDFromResponse(body []byte) string {
	var obj dataObjectShape
	if err := json.Unmarshal(body, &obj); err == nil {
		if id := obj.Data.visitID(); id != "" {
			return id
		}
	}
	var bare idFields
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare.visitID()
	}
	return ""
}
