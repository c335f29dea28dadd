// Package metricsstore derives the dashboard figures from the employee list
// and the day's attendance records. The API has no stats endpoint, so the
// arithmetic lives here.
package metricsstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/timezones"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// EmployeeLister is the slice of the employee store the dashboard needs.
type EmployeeLister interface {
	List(ctx context.Context, sess *models.Session) ([]models.Employee, error)
}

// AttendanceLister is the slice of the attendance store the dashboard needs.
type AttendanceLister interface {
	List(ctx context.Context, sess *models.Session, f models.AttendanceFilter) ([]models.AttendanceRecord, error)
}

// DefaultWorkStart is the time of day after which a check-in is late.
var DefaultWorkStart = timezones.Clock{Hour: 9}

// Policy fixes the calendar the figures are computed in.
type Policy struct {
	Location  *time.Location
	WorkStart timezones.Clock
}

// DefaultPolicy uses the process's local zone and a 09:00 start.
func DefaultPolicy() Policy {
	return Policy{Location: time.Local, WorkStart: DefaultWorkStart}
}

func (p Policy) loc() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// Snapshot is one dashboard load: the figures plus the inputs they came from.
type Snapshot struct {
	Stats     models.DashboardStats
	Employees []models.Employee
	Records   []models.AttendanceRecord
	Window    timezones.Window
}

// FetchDashboardStats loads the employees and the records of now's local day
// in parallel and computes the figures. Either fetch failing fails the whole
// load; no partial figures are returned.
func FetchDashboardStats(ctx context.Context, emps EmployeeLister, att AttendanceLister, sess *models.Session, now time.Time, p Policy) (Snapshot, error) {
	win := timezones.DayWindow(now, p.loc())

	var (
		employees []models.Employee
		records   []models.AttendanceRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = emps.List(gctx, sess)
		if err != nil {
			return fmt.Errorf("list employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = att.List(gctx, sess, models.AttendanceFilter{
			StartDate: win.StartUnix(),
			EndDate:   win.EndUnix(),
		})
		if err != nil {
			return fmt.Errorf("list today's attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Stats:     ComputeStats(employees, records, p),
		Employees: employees,
		Records:   records,
		Window:    win,
	}, nil
}

// ComputeStats counts active employees, present and late records, and the
// absent remainder. Records of inactive or unknown employees count as neither
// present nor late; absent never goes below zero.
func ComputeStats(employees []models.Employee, records []models.AttendanceRecord, p Policy) models.DashboardStats {
	active := make(map[string]bool, len(employees))
	var stats models.DashboardStats
	for _, e := range employees {
		if e.Active {
			active[e.EmployeeID] = true
			stats.TotalEmployees++
		}
	}

	for _, r := range records {
		if !active[r.EmployeeID] {
			continue
		}
		switch r.EffectiveStatus() {
		case models.StatusCheckedIn, models.StatusCheckedOut:
			stats.PresentToday++
		}
		if IsLate(r, p) {
			stats.LateToday++
		}
	}

	stats.AbsentToday = stats.TotalEmployees - stats.PresentToday
	if stats.AbsentToday < 0 {
		stats.AbsentToday = 0
	}
	return stats
}

// IsLate reports whether r's check-in is strictly after the work start on
// the check-in's own local date.
func IsLate(r models.AttendanceRecord, p Policy) bool {
	checkIn := time.Unix(r.CheckInTime, 0).In(p.loc())
	return checkIn.After(p.WorkStart.On(checkIn, p.loc()))
}

// RecentActivity returns up to n records, most recent event first.
func RecentActivity(records []models.AttendanceRecord, n int) []models.AttendanceRecord {
	out := append([]models.AttendanceRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastEventTime() > out[j].LastEventTime()
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Alerts returns the dashboard warnings for stats, absent first.
func Alerts(stats models.DashboardStats) []string {
	var out []string
	if stats.AbsentToday > 0 {
		out = append(out, fmt.Sprintf("%d employees are absent today", stats.AbsentToday))
	}
	if stats.LateToday > 0 {
		out = append(out, fmt.Sprintf("%d employees were late today", stats.LateToday))
	}
	return out
}
