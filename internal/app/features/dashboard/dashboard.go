// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	metricsstore "github.com/dalemusser/attendhub/internal/app/store/metrics"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/attendhub/internal/app/system/timezones"
	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type activityRow struct {
	EmployeeName string
	EmployeeID   string
	Action       string
	Time         string
	Date         string
	Status       string
	StatusLabel  string
}

type dashboardData struct {
	viewdata.BaseVM
	Today  string
	Stats  models.DashboardStats
	Recent []activityRow
	Alerts []string
	Error  string
}

// ServeDashboard handles GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r, time.Now())
	if !ok {
		return
	}
	data.BaseVM = viewdata.NewBaseVM(w, r, "Dashboard", "/dashboard")
	templates.Render(w, r, "dashboard", data)
}

// load builds the page data. It reports false when the response has already
// been written (the API rejected the session).
func (h *Handler) load(w http.ResponseWriter, r *http.Request, t time.Time) (dashboardData, bool) {
	sess, _ := auth.CurrentSession(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "dashboard stats")
	defer cancel()

	data := dashboardData{Today: t.In(h.loc()).Format(timezones.DisplayDateLong)}

	snap, err := metricsstore.FetchDashboardStats(ctx, h.Employees, h.Attendance, sess, t, h.Policy)
	if err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return data, false
		}
		h.Log.Warn("dashboard load failed", zap.Error(err))
		data.Error = uierrors.UserMessage(err, "Failed to load dashboard data")
		return data, true
	}

	data.Stats = snap.Stats
	data.Alerts = metricsstore.Alerts(snap.Stats)
	data.Recent = h.activityRows(metricsstore.RecentActivity(snap.Records, h.RecentLimit))
	return data, true
}

func (h *Handler) loc() *time.Location {
	if h.Policy.Location == nil {
		return time.Local
	}
	return h.Policy.Location
}

func (h *Handler) activityRows(recs []models.AttendanceRecord) []activityRow {
	rows := make([]activityRow, 0, len(recs))
	for _, rec := range recs {
		action := "Checked in"
		if !rec.IsOpen() {
			action = "Checked out"
		}
		ts := rec.LastEventTime()
		st := rec.EffectiveStatus()
		rows = append(rows, activityRow{
			EmployeeName: rec.EmployeeName,
			EmployeeID:   rec.EmployeeID,
			Action:       action,
			Time:         timezones.FormatTime(ts, h.loc()),
			Date:         timezones.FormatDate(ts, h.loc()),
			Status:       string(st),
			StatusLabel:  st.Label(),
		})
	}
	return rows
}
