// internal/app/features/attendance/list.go
package attendance

import (
	"net/http"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeList renders one local day of attendance, optionally for one employee.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data, ok := h.loadList(w, r)
	if !ok {
		return
	}
	data.BaseVM = viewdata.NewBaseVM(w, r, "Attendance", "/dashboard")
	templates.Render(w, r, "attendance_list", data)
}

func (h *Handler) loadList(w http.ResponseWriter, r *http.Request) (listData, bool) {
	f, err := parseDayFilter(r.URL.Query(), h.Loc, h.now())
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad attendance filter", err, "Invalid date.", "/attendance")
		return listData{}, false
	}

	sess, _ := auth.CurrentSession(r)
	data := listData{Date: f.Date, Employee: f.Employee, ExportQuery: f.Query()}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list attendance")
	defer cancel()

	emps, err := h.Employees.List(ctx, sess)
	if err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return data, false
		}
		h.Log.Warn("list employees for attendance failed", zap.Error(err))
		data.Error = uierrors.UserMessage(err, "Failed to load employees")
	}
	data.Employees = toOptions(emps)
	for _, e := range emps {
		if e.EmployeeID == f.Employee {
			data.EmployeeName = e.FirstName
		}
	}

	recs, err := h.Attendance.List(ctx, sess, f.APIFilter(h.Loc))
	if err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return data, false
		}
		h.Log.Warn("list attendance failed", zap.String("date", f.Date), zap.Error(err))
		data.Error = uierrors.UserMessage(err, "Failed to load attendance data")
		return data, true
	}

	data.Rows = toRows(recs, h.Loc)
	data.Count = len(data.Rows)
	return data, true
}
