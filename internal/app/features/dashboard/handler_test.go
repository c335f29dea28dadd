package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	attendancestore "github.com/dalemusser/attendhub/internal/app/store/attendance"
	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	metricsstore "github.com/dalemusser/attendhub/internal/app/store/metrics"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/dalemusser/attendhub/internal/testutil"
	"go.uber.org/zap"
)

var day = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	client := api.Client(t)
	logger := zap.NewNop()
	policy := metricsstore.Policy{Location: time.UTC, WorkStart: metricsstore.DefaultWorkStart}
	h := NewHandler(employeestore.New(client), attendancestore.New(client), policy, 0,
		uierrors.NewErrorLogger(logger, testutil.NewSessionManager(t)), logger)
	return h, api
}

func at(h, m int) int64 {
	return time.Date(2024, 3, 15, h, m, 0, 0, time.UTC).Unix()
}

func TestLoad_ComputesStatsAndActivity(t *testing.T) {
	h, api := newTestHandler(t)
	api.AddEmployee(models.Employee{EmployeeID: "A", Active: true})
	api.AddEmployee(models.Employee{EmployeeID: "B", Active: true})
	out := at(17, 0)
	api.AddRecord(models.AttendanceRecord{EmployeeID: "A", EmployeeName: "Ada L", CheckInTime: at(8, 45), CheckOutTime: &out})

	data, ok := h.load(httptest.NewRecorder(), testutil.NewAuthenticatedRequest("GET", "/dashboard"), day)
	if !ok {
		t.Fatal("expected page data")
	}
	if data.Error != "" {
		t.Fatalf("unexpected error %q", data.Error)
	}
	want := models.DashboardStats{TotalEmployees: 2, PresentToday: 1, AbsentToday: 1}
	if data.Stats != want {
		t.Errorf("stats: got %+v, want %+v", data.Stats, want)
	}
	if len(data.Alerts) != 1 || data.Alerts[0] != "1 employees are absent today" {
		t.Errorf("alerts: got %v", data.Alerts)
	}
	if len(data.Recent) != 1 || data.Recent[0].Action != "Checked out" || data.Recent[0].Time != "05:00 PM" {
		t.Errorf("recent: got %+v", data.Recent)
	}
	if data.Today != "March 15, 2024" {
		t.Errorf("Today: got %q", data.Today)
	}
	if h.RecentLimit != DefaultRecentLimit {
		t.Errorf("RecentLimit: got %d", h.RecentLimit)
	}
}

func TestLoad_FailureShowsMessage(t *testing.T) {
	h, api := newTestHandler(t)
	api.Fail("GET", "/employees", http.StatusInternalServerError, "INTERNAL", "")

	data, ok := h.load(httptest.NewRecorder(), testutil.NewAuthenticatedRequest("GET", "/dashboard"), day)
	if !ok {
		t.Fatal("expected page data")
	}
	if data.Error != "Failed to load dashboard data" {
		t.Errorf("Error: got %q", data.Error)
	}
	if data.Stats != (models.DashboardStats{}) {
		t.Errorf("no partial figures expected, got %+v", data.Stats)
	}
}

func TestLoad_ExpiredTokenForcesLogin(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithSession(httptest.NewRequest("GET", "/dashboard", nil), &models.Session{Token: "expired"})
	rec := httptest.NewRecorder()
	if _, ok := h.load(rec, req, day); ok {
		t.Fatal("expected the response to be written")
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
