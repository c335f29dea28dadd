// internal/domain/models/attendance.go
package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// AttendanceStatus is the server-side status of an attendance record.
type AttendanceStatus string

const (
	StatusCheckedIn  AttendanceStatus = "CHECKED_IN"
	StatusCheckedOut AttendanceStatus = "CHECKED_OUT"
	StatusIncomplete AttendanceStatus = "INCOMPLETE"
)

// AllStatuses lists the statuses offered in the manual entry form.
var AllStatuses = []AttendanceStatus{StatusCheckedIn, StatusCheckedOut, StatusIncomplete}

// Label returns the status with underscores replaced by spaces ("CHECKED IN").
func (s AttendanceStatus) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// ParseStatus normalizes form input. Unknown values fall back to CHECKED_OUT,
// the manual entry default.
func ParseStatus(s string) AttendanceStatus {
	switch st := AttendanceStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusCheckedIn, StatusCheckedOut, StatusIncomplete:
		return st
	default:
		return StatusCheckedOut
	}
}

// AttendanceRecord is one check-in/check-out pair. Times are epoch seconds.
type AttendanceRecord struct {
	ID                 int64            `json:"id"`
	EmployeeID         string           `json:"employeeId"`
	EmployeeName       string           `json:"employeeName"`
	CheckInTime        int64            `json:"checkInTime"`
	CheckOutTime       *int64           `json:"checkOutTime,omitempty"`
	CheckInLocation    string           `json:"checkInLocation"`
	CheckOutLocation   string           `json:"checkOutLocation"`
	DistanceFromOffice float64          `json:"distanceFromOffice"`
	Status             AttendanceStatus `json:"status"`
	CreatedAt          int64            `json:"createdAt"`
	UpdatedAt          int64            `json:"updatedAt"`
}

// IsOpen reports whether the record has no check-out yet.
func (a AttendanceRecord) IsOpen() bool {
	return a.CheckOutTime == nil || *a.CheckOutTime == 0
}

// EffectiveStatus is the status the console displays and counts.
// The presence of a check-out time is authoritative: a closed record is
// CHECKED_OUT whatever the server status says, and an open record is
// CHECKED_IN unless the server has marked it INCOMPLETE.
func (a AttendanceRecord) EffectiveStatus() AttendanceStatus {
	if !a.IsOpen() {
		return StatusCheckedOut
	}
	if a.Status == StatusIncomplete {
		return StatusIncomplete
	}
	return StatusCheckedIn
}

// LastEventTime returns the check-out time for closed records and the
// check-in time otherwise.
func (a AttendanceRecord) LastEventTime() int64 {
	if a.IsOpen() {
		return a.CheckInTime
	}
	return *a.CheckOutTime
}

// AttendanceList is the payload of GET /attendance.
type AttendanceList struct {
	Records    []AttendanceRecord `json:"records"`
	TotalCount int                `json:"totalCount"`
}

// AttendanceFilter holds the optional query parameters of GET /attendance.
// Zero values are omitted. StartDate and EndDate are inclusive epoch seconds.
type AttendanceFilter struct {
	EmployeeID string
	StartDate  int64
	EndDate    int64
}

// ManualAttendanceCreate is the body of POST /attendance/manual.
// CheckOutTime is omitted entirely when nil (an open record).
type ManualAttendanceCreate struct {
	EmployeeID   string           `json:"employeeId"`
	CheckInTime  int64            `json:"checkInTime"`
	CheckOutTime *int64           `json:"checkOutTime,omitempty"`
	Status       AttendanceStatus `json:"status"`
}

// CheckOutChange says what an update does to a record's check-out time.
type CheckOutChange int

const (
	CheckOutUnchanged CheckOutChange = iota // field omitted
	CheckOutSet                             // field sent as a number
	CheckOutClear                           // field sent as null
)

// AttendanceUpdate is the body of PUT /attendance/{id}.
//
// Omitted and cleared check-out times are different requests: the server
// treats "checkOutTime": null as "reopen the record", so the field is only
// written as null when CheckOut is CheckOutClear.
type AttendanceUpdate struct {
	CheckInTime  *int64
	CheckOut     CheckOutChange
	CheckOutTime int64 // used when CheckOut == CheckOutSet
	Status       *AttendanceStatus
}

// SetCheckOut marks the check-out time to be written.
func (u *AttendanceUpdate) SetCheckOut(ts int64) {
	u.CheckOut = CheckOutSet
	u.CheckOutTime = ts
}

// ClearCheckOut marks the check-out time to be removed.
func (u *AttendanceUpdate) ClearCheckOut() {
	u.CheckOut = CheckOutClear
	u.CheckOutTime = 0
}

// MarshalJSON writes only the fields the update actually changes.
func (u AttendanceUpdate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	field := func(name string, v any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.WriteString(`"` + name + `":`)
		buf.Write(b)
		return nil
	}

	if u.CheckInTime != nil {
		if err := field("checkInTime", *u.CheckInTime); err != nil {
			return nil, err
		}
	}
	switch u.CheckOut {
	case CheckOutSet:
		if err := field("checkOutTime", u.CheckOutTime); err != nil {
			return nil, err
		}
	case CheckOutClear:
		if err := field("checkOutTime", nil); err != nil {
			return nil, err
		}
	}
	if u.Status != nil {
		if err := field("status", *u.Status); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
