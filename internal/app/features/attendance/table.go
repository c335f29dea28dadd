// internal/app/features/attendance/table.go
package attendance

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/timezones"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

// WorkingHours renders the span between check-in and check-out as "Xh Ym".
// Open records show "-". A check-out before the check-in counts as zero.
func WorkingHours(checkIn int64, checkOut *int64) string {
	if checkOut == nil || *checkOut == 0 {
		return "-"
	}
	d := *checkOut - checkIn
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%dh %dm", d/3600, (d%3600)/60)
}

func badgeClass(s models.AttendanceStatus) string {
	switch s {
	case models.StatusCheckedIn:
		return "status-partial"
	case models.StatusCheckedOut:
		return "status-present"
	case models.StatusIncomplete:
		return "status-incomplete"
	default:
		return "status-absent"
	}
}

func checkOutCell(rec models.AttendanceRecord, loc *time.Location) string {
	if rec.IsOpen() {
		return "-"
	}
	return timezones.FormatTime(*rec.CheckOutTime, loc)
}

func toRow(rec models.AttendanceRecord, loc *time.Location) recordRow {
	st := rec.EffectiveStatus()
	row := recordRow{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		CheckIn:      timezones.FormatTime(rec.CheckInTime, loc),
		CheckOut:     checkOutCell(rec, loc),
		Hours:        WorkingHours(rec.CheckInTime, rec.CheckOutTime),
		Location:     rec.CheckInLocation,
		Distance:     rec.DistanceFromOffice,
		Status:       st,
		StatusLabel:  st.Label(),
		BadgeClass:   badgeClass(st),
	}
	if rec.CheckOutLocation != "" && rec.CheckOutLocation != rec.CheckInLocation {
		row.OutLocation = rec.CheckOutLocation
	}
	return row
}

func toRows(recs []models.AttendanceRecord, loc *time.Location) []recordRow {
	rows := make([]recordRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, toRow(rec, loc))
	}
	return rows
}

func toOptions(emps []models.Employee) []employeeOption {
	out := make([]employeeOption, 0, len(emps))
	for _, e := range emps {
		out = append(out, employeeOption{
			Code:  e.EmployeeID,
			Label: fmt.Sprintf("%s (%s)", e.FullName(), e.EmployeeID),
		})
	}
	return out
}

// dayFilter is the list selection shared by the table and the exports.
type dayFilter struct {
	Day      time.Time
	Date     string
	Employee string // "all" or a code
}

// parseDayFilter reads ?date= and ?employee=. A missing date means today in
// loc.
func parseDayFilter(q url.Values, loc *time.Location, now time.Time) (dayFilter, error) {
	f := dayFilter{Employee: strings.TrimSpace(q.Get("employee"))}
	if f.Employee == "" {
		f.Employee = "all"
	}

	raw := strings.TrimSpace(q.Get("date"))
	if raw == "" {
		f.Day = now.In(loc)
	} else {
		d, err := timezones.ParseDay(raw, loc)
		if err != nil {
			return dayFilter{}, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		f.Day = d
	}
	f.Date = f.Day.Format(timezones.DayLayout)
	return f, nil
}

// APIFilter converts the selection to GET /attendance parameters using the
// inclusive local-day window.
func (f dayFilter) APIFilter(loc *time.Location) models.AttendanceFilter {
	win := timezones.DayWindow(f.Day, loc)
	af := models.AttendanceFilter{StartDate: win.StartUnix(), EndDate: win.EndUnix()}
	if f.Employee != "all" {
		af.EmployeeID = f.Employee
	}
	return af
}

// Query is the list URL query for this selection.
func (f dayFilter) Query() string {
	v := url.Values{}
	v.Set("date", f.Date)
	v.Set("employee", f.Employee)
	return v.Encode()
}

func listURL(date, employee string) string {
	v := url.Values{}
	if date != "" {
		v.Set("date", date)
	}
	if employee != "" {
		v.Set("employee", employee)
	}
	if len(v) == 0 {
		return "/attendance"
	}
	return "/attendance?" + v.Encode()
}
