// internal/app/features/attendance/types.go
package attendance

import (
	"github.com/dalemusser/attendhub/internal/app/system/formutil"
	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

// Table row for the attendance list
type recordRow struct {
	ID           int64
	EmployeeID   string
	EmployeeName string
	CheckIn      string
	CheckOut     string
	Hours        string
	Location     string
	OutLocation  string // shown only when it differs from Location
	Distance     float64
	Status       models.AttendanceStatus
	StatusLabel  string
	BadgeClass   string
}

type employeeOption struct {
	Code  string
	Label string
}

type listData struct {
	viewdata.BaseVM

	Date         string // YYYY-MM-DD
	Employee     string // "all" or an employee code
	EmployeeName string // first name of the selected employee, for the empty message
	Employees    []employeeOption
	Rows         []recordRow
	Count        int
	ExportQuery  string
	Error        string
}

// recordForm backs both manual entry and edit.
type recordForm struct {
	formutil.Base

	Editing     bool
	ID          int64
	EmployeeID  string
	CheckIn     string // datetime-local
	CheckOut    string // datetime-local, blank when open
	HadCheckOut bool
	Status      models.AttendanceStatus

	// list context to return to
	Date     string
	Employee string

	Employees []employeeOption
	Statuses  []models.AttendanceStatus
}
