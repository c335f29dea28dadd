// internal/app/features/attendance/form.go
package attendance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/formutil"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/attendhub/internal/app/system/timezones"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const operationFailed = "Operation failed"

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", raw)
	}
	return id, nil
}

// times holds the parsed form timestamps.
type times struct {
	checkIn  int64
	checkOut *int64
}

// readTimes parses the datetime-local fields in loc and checks their order.
func readTimes(form *recordForm, loc *time.Location) (times, string) {
	var out times
	if form.CheckIn == "" {
		return out, "Check-in time is required"
	}
	in, err := timezones.ParseDateTime(form.CheckIn, loc)
	if err != nil {
		return out, "Invalid check-in time"
	}
	out.checkIn = in.Unix()

	if form.CheckOut == "" {
		return out, ""
	}
	o, err := timezones.ParseDateTime(form.CheckOut, loc)
	if err != nil {
		return out, "Invalid check-out time"
	}
	if o.Before(in) {
		return out, "Check-out time must be after check-in time"
	}
	ts := o.Unix()
	out.checkOut = &ts
	return out, ""
}

func readForm(r *http.Request, form *recordForm) {
	form.CheckIn = strings.TrimSpace(r.PostFormValue("checkInTime"))
	form.CheckOut = strings.TrimSpace(r.PostFormValue("checkOutTime"))
	form.Status = models.ParseStatus(r.PostFormValue("status"))
	form.Date = strings.TrimSpace(r.PostFormValue("date"))
	form.Employee = strings.TrimSpace(r.PostFormValue("employee"))
}

// employeeOptions loads the picker. A failure leaves it empty; the form
// still renders.
func (h *Handler) employeeOptions(ctx context.Context, sess *models.Session) []employeeOption {
	emps, err := h.Employees.List(ctx, sess)
	if err != nil {
		h.Log.Warn("list employees for attendance form failed", zap.Error(err))
		return nil
	}
	return toOptions(employeestore.ActiveOnly(emps))
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, form recordForm) {
	title := "Manual Attendance Entry"
	if form.Editing {
		title = "Edit Attendance Record"
	}
	if form.Employees == nil && !form.Editing {
		sess, _ := auth.CurrentSession(r)
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "employee options")
		form.Employees = h.employeeOptions(ctx, sess)
		cancel()
	}
	form.Statuses = models.AllStatuses
	formutil.SetBase(&form.Base, w, r, title, listURL(form.Date, form.Employee))
	formutil.Render(w, r, status, "attendance_form", form)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Manual entry                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeNew renders the manual entry form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	form := recordForm{
		Status:   models.StatusCheckedOut,
		Date:     q.Get("date"),
		Employee: q.Get("employee"),
	}
	if form.Employee != "" && form.Employee != "all" {
		form.EmployeeID = form.Employee
	}
	h.renderForm(w, r, http.StatusOK, form)
}

// HandleCreate posts a manual record.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/attendance")
		return
	}

	var form recordForm
	readForm(r, &form)
	form.EmployeeID = strings.TrimSpace(r.PostFormValue("employeeId"))

	if form.EmployeeID == "" {
		form.SetError("Employee is required")
		h.renderForm(w, r, http.StatusBadRequest, form)
		return
	}
	ts, problem := readTimes(&form, h.Loc)
	if problem != "" {
		form.SetError(problem)
		h.renderForm(w, r, http.StatusBadRequest, form)
		return
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create attendance")
	defer cancel()

	rec, err := h.Attendance.CreateManual(ctx, sess, models.ManualAttendanceCreate{
		EmployeeID:   form.EmployeeID,
		CheckInTime:  ts.checkIn,
		CheckOutTime: ts.checkOut,
		Status:       form.Status,
	})
	if err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return
		}
		h.Log.Warn("create attendance failed", zap.String("employee_id", form.EmployeeID), zap.Error(err))
		form.SetError(uierrors.UserMessage(err, operationFailed))
		h.renderForm(w, r, http.StatusBadGateway, form)
		return
	}

	h.Log.Info("manual attendance created", zap.Int64("id", rec.ID), zap.String("employee_id", form.EmployeeID))
	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Attendance record created")
	day := time.Unix(ts.checkIn, 0).In(h.Loc).Format(timezones.DayLayout)
	http.Redirect(w, r, listURL(day, form.Employee), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Edit                                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeEdit renders the edit form. The API has no single-record read, so the
// record is found in the day the list was showing.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad record id", err, "Invalid record id.", "/attendance")
		return
	}
	f, err := parseDayFilter(r.URL.Query(), h.Loc, h.now())
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad attendance filter", err, "Invalid date.", "/attendance")
		return
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "get attendance")
	defer cancel()

	rec, found, err := h.Attendance.Get(ctx, sess, id, f.APIFilter(h.Loc))
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, "get attendance failed", err, "Failed to load attendance data", listURL(f.Date, f.Employee))
		return
	}
	if !found {
		uierrors.RenderError(w, r, http.StatusNotFound, "Attendance record not found", listURL(f.Date, f.Employee))
		return
	}

	form := recordForm{
		Editing:    true,
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		CheckIn:    timezones.FormatDateTime(rec.CheckInTime, h.Loc),
		Status:     models.ParseStatus(string(rec.Status)),
		Date:       f.Date,
		Employee:   f.Employee,
		Employees:  []employeeOption{{Code: rec.EmployeeID, Label: fmt.Sprintf("%s (%s)", rec.EmployeeName, rec.EmployeeID)}},
	}
	if !rec.IsOpen() {
		form.CheckOut = timezones.FormatDateTime(*rec.CheckOutTime, h.Loc)
		form.HadCheckOut = true
	}
	h.renderForm(w, r, http.StatusOK, form)
}

// HandleEdit updates a record. Clearing the check-out field of a closed
// record reopens it; leaving an open record's field blank changes nothing.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad record id", err, "Invalid record id.", "/attendance")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/attendance")
		return
	}

	form := recordForm{
		Editing:     true,
		ID:          id,
		EmployeeID:  strings.TrimSpace(r.PostFormValue("employeeId")),
		HadCheckOut: r.PostFormValue("hadCheckOut") == "true",
	}
	readForm(r, &form)
	form.Employees = []employeeOption{{Code: form.EmployeeID, Label: form.EmployeeID}}

	ts, problem := readTimes(&form, h.Loc)
	if problem != "" {
		form.SetError(problem)
		h.renderForm(w, r, http.StatusBadRequest, form)
		return
	}

	upd := models.AttendanceUpdate{CheckInTime: &ts.checkIn, Status: &form.Status}
	switch {
	case ts.checkOut != nil:
		upd.SetCheckOut(*ts.checkOut)
	case form.HadCheckOut:
		upd.ClearCheckOut()
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update attendance")
	defer cancel()

	if _, err := h.Attendance.Update(ctx, sess, id, upd); err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return
		}
		h.Log.Warn("update attendance failed", zap.Int64("id", id), zap.Error(err))
		form.SetError(uierrors.UserMessage(err, operationFailed))
		h.renderForm(w, r, http.StatusBadGateway, form)
		return
	}

	h.Log.Info("attendance updated", zap.Int64("id", id))
	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Attendance record updated")
	http.Redirect(w, r, listURL(form.Date, form.Employee), http.StatusSeeOther)
}
