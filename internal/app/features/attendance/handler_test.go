package attendance

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	attendancestore "github.com/dalemusser/attendhub/internal/app/store/attendance"
	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/dalemusser/attendhub/internal/testutil"
	"go.uber.org/zap"
)

var today = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func at(day, h, m int) int64 {
	return time.Date(2024, 3, day, h, m, 0, 0, time.UTC).Unix()
}

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	client := api.Client(t)
	logger := zap.NewNop()
	sm := testutil.NewSessionManager(t)
	h := NewHandler(attendancestore.New(client), employeestore.New(client), time.UTC, sm, uierrors.NewErrorLogger(logger, sm), logger)
	h.now = func() time.Time { return today }
	return h, api
}

func seed(api *testutil.FakeAPI) {
	api.AddEmployee(models.Employee{EmployeeID: "EMP001", FirstName: "Ada", LastName: "Lovelace", Active: true})
	api.AddEmployee(models.Employee{EmployeeID: "EMP002", FirstName: "Grace", LastName: "Hopper", Active: true})
	out := at(15, 17, 0)
	api.AddRecord(models.AttendanceRecord{EmployeeID: "EMP001", EmployeeName: "Ada Lovelace", CheckInTime: at(15, 9, 0), CheckOutTime: &out, Status: models.StatusCheckedOut})
	api.AddRecord(models.AttendanceRecord{EmployeeID: "EMP002", EmployeeName: "Grace Hopper", CheckInTime: at(15, 9, 30), Status: models.StatusCheckedIn})
	api.AddRecord(models.AttendanceRecord{EmployeeID: "EMP001", EmployeeName: "Ada Lovelace", CheckInTime: at(14, 9, 0), Status: models.StatusCheckedIn})
	// last second of the 15th is inside the window
	api.AddRecord(models.AttendanceRecord{EmployeeID: "EMP002", EmployeeName: "Grace Hopper", CheckInTime: time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC).Unix()})
}

func TestLoadList_Day(t *testing.T) {
	h, api := newTestHandler(t)
	seed(api)

	data, ok := h.loadList(testutil.NewRecorder(), testutil.NewAuthenticatedRequest("GET", "/attendance?date=2024-03-15"))
	if !ok {
		t.Fatal("expected page data")
	}
	if data.Count != 3 {
		t.Fatalf("Count: got %d, want 3", data.Count)
	}
	if len(data.Employees) != 2 {
		t.Errorf("employee options: got %d", len(data.Employees))
	}
	if data.ExportQuery != "date=2024-03-15&employee=all" {
		t.Errorf("ExportQuery: got %q", data.ExportQuery)
	}

	sent, _ := api.LastRequest("GET", "/attendance")
	q, _ := url.ParseQuery(sent.Query)
	if q.Get("startDate") != strconv.FormatInt(at(15, 0, 0), 10) {
		t.Errorf("startDate: got %s", q.Get("startDate"))
	}
	if q.Has("employeeId") {
		t.Error("all employees must not send employeeId")
	}
}

func TestLoadList_OneEmployee(t *testing.T) {
	h, api := newTestHandler(t)
	seed(api)

	data, _ := h.loadList(testutil.NewRecorder(), testutil.NewAuthenticatedRequest("GET", "/attendance?date=2024-03-15&employee=EMP001"))
	if data.Count != 1 || data.Rows[0].Hours != "8h 0m" {
		t.Errorf("rows: %+v", data.Rows)
	}
	if data.EmployeeName != "Ada" {
		t.Errorf("EmployeeName: got %q", data.EmployeeName)
	}
}

func TestLoadList_DefaultsToToday(t *testing.T) {
	h, api := newTestHandler(t)
	seed(api)

	data, _ := h.loadList(testutil.NewRecorder(), testutil.NewAuthenticatedRequest("GET", "/attendance"))
	if data.Date != "2024-03-15" {
		t.Errorf("Date: got %q", data.Date)
	}
}

func TestLoadList_BadDate(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	testutil.Serve(func(w http.ResponseWriter, r *http.Request) { h.loadList(w, r) }, rec, testutil.NewAuthenticatedRequest("GET", "/attendance?date=yesterday"))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestLoadList_APIFailure(t *testing.T) {
	h, api := newTestHandler(t)
	api.Fail("GET", "/attendance", http.StatusInternalServerError, "INTERNAL", "")

	data, ok := h.loadList(testutil.NewRecorder(), testutil.NewAuthenticatedRequest("GET", "/attendance"))
	if !ok {
		t.Fatal("expected page data")
	}
	if data.Error != "Failed to load attendance data" {
		t.Errorf("Error: got %q", data.Error)
	}
}

func TestHandleCreate(t *testing.T) {
	h, api := newTestHandler(t)
	seed(api)
	before := len(api.Records())

	rec := testutil.NewRecorder()
	testutil.Serve(h.HandleCreate, rec, testutil.NewFormRequest("/attendance", url.Values{
		"employeeId":   {"EMP002"},
		"checkInTime":  {"2024-03-10T08:30"},
		"checkOutTime": {"2024-03-10T16:45"},
		"status":       {"CHECKED_OUT"},
		"employee":     {"all"},
	}))

	rec.AssertRedirect(t, "/attendance?date=2024-03-10&employee=all")
	recs := api.Records()
	if len(recs) != before+1 {
		t.Fatalf("records: got %d, want %d", len(recs), before+1)
	}
	got := recs[len(recs)-1]
	if got.CheckInTime != at(10, 8, 30) || got.CheckOutTime == nil || *got.CheckOutTime != at(10, 16, 45) {
		t.Errorf("stored record: %+v", got)
	}
}

func TestHandleCreate_OpenRecordOmitsCheckOut(t *testing.T) {
	h, api := newTestHandler(t)
	seed(api)

	testutil.Serve(h.HandleCreate, testutil.NewRecorder(), testutil.NewFormRequest("/attendance", url.Values{
		"employeeId":  {"EMP002"},
		"checkInTime": {"2024-03-10T08:30"},
		"status":      {"CHECKED_IN"},
	}))

	sent, ok := api.LastRequest("POST", "/attendance/manual")
	if !ok {
		t.Fatal("expected POST /attendance/manual")
	}
	var body map[string]any
	if err := json.Unmarshal(sent.Body, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, has := body["checkOutTime"]; has {
		t.Errorf("open record must omit checkOutTime: %v", body)
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"no employee", url.Values{"checkInTime": {"2024-03-10T08:30"}}},
		{"no check in", url.Values{"employeeId": {"EMP001"}}},
		{"bad check in", url.Values{"employeeId": {"EMP001"}, "checkInTime": {"10/03/2024"}}},
		{"check out before check in", url.Values{"employeeId": {"EMP001"}, "checkInTime": {"2024-03-10T08:30"}, "checkOutTime": {"2024-03-10T08:00"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, api := newTestHandler(t)
			rec := testutil.NewRecorder()
			testutil.Serve(h.HandleCreate, rec, testutil.NewFormRequest("/attendance", tt.form))
			rec.AssertStatus(t, http.StatusBadRequest)
			if _, ok := api.LastRequest("POST", "/attendance/manual"); ok {
				t.Error("invalid form must not reach the API")
			}
		})
	}
}

func editRequest(id int64, form url.Values) *http.Request {
	return testutil.WithChiURLParam(testutil.NewFormRequest("/attendance/x/edit", form), "id", strconv.FormatInt(id, 10))
}

func TestHandleEdit_ClearingCheckOutReopens(t *testing.T) {
	h, api := newTestHandler(t)
	seed(api)
	closed := api.Records()[0]

	rec := testutil.NewRecorder()
	testutil.Serve(h.HandleEdit, rec, editRequest(closed.ID, url.Values{
		"employeeId":   {"EMP001"},
		"checkInTime":  {"2024-03-15T09:00"},
		"checkOutTime": {""},
		"hadCheckOut":  {"true"},
		"status":       {"CHECKED_IN"},
		"date":         {"2024-03-15"},
		"employee":     {"all"},
	}))

	rec.AssertRedirect(t, "/attendance?date=2024-03-15&employee=all")
	if api.Records()[0].CheckOutTime != nil {
		t.Error("expected check-out to be cleared")
	}
}

func TestHandleEdit_OpenRecordStaysOpenWithoutNull(t *testing.T) {
	h, api := newTestHandler(t)
	seed(api)
	open := api.Records()[1]

	testutil.Serve(h.HandleEdit, testutil.NewRecorder(), editRequest(open.ID, url.Values{
		"employeeId":  {"EMP002"},
		"checkInTime": {"2024-03-15T09:45"},
		"status":      {"CHECKED_IN"},
	}))

	sent, _ := api.LastRequest("PUT", "/attendance/"+strconv.FormatInt(open.ID, 10))
	var body map[string]json.RawMessage
	if err := json.Unmarshal(sent.Body, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, has := body["checkOutTime"]; has {
		t.Errorf("unchanged check-out must be omitted: %s", sent.Body)
	}
	if api.Records()[1].CheckInTime != at(15, 9, 45) {
		t.Error("expected check-in to move")
	}
}

func TestHandleEdit_SetCheckOut(t *testing.T) {
	h, api := newTestHandler(t)
	seed(api)
	open := api.Records()[1]

	testutil.Serve(h.HandleEdit, testutil.NewRecorder(), editRequest(open.ID, url.Values{
		"employeeId":   {"EMP002"},
		"checkInTime":  {"2024-03-15T09:30"},
		"checkOutTime": {"2024-03-15T18:00"},
		"status":       {"CHECKED_OUT"},
	}))

	got := api.Records()[1]
	if got.CheckOutTime == nil || *got.CheckOutTime != at(15, 18, 0) {
		t.Errorf("CheckOutTime: %v", got.CheckOutTime)
	}
}

func TestServeEdit_NotInDay(t *testing.T) {
	h, api := newTestHandler(t)
	seed(api)
	other := api.Records()[2] // on the 14th

	req := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("GET", "/attendance/x/edit?date=2024-03-15"), "id", strconv.FormatInt(other.ID, 10))
	rec := testutil.NewRecorder()
	testutil.Serve(h.ServeEdit, rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleDelete(t *testing.T) {
	h, api := newTestHandler(t)
	seed(api)
	target := api.Records()[0]

	req := testutil.WithChiURLParam(testutil.NewFormRequest("/attendance/x/delete", url.Values{"return": {"/attendance?date=2024-03-15"}}), "id", strconv.FormatInt(target.ID, 10))
	rec := testutil.NewRecorder()
	testutil.Serve(h.HandleDelete, rec, req)

	rec.AssertRedirect(t, "/attendance?date=2024-03-15")
	for _, r := range api.Records() {
		if r.ID == target.ID {
			t.Fatal("record still present")
		}
	}
}

func TestHandleDelete_Failure(t *testing.T) {
	h, api := newTestHandler(t)
	api.Fail("DELETE", "/attendance/{id}", http.StatusInternalServerError, "INTERNAL", "")

	req := testutil.WithChiURLParam(testutil.NewFormRequest("/attendance/1/delete", nil), "id", "1")
	rec := testutil.NewRecorder()
	testutil.Serve(h.HandleDelete, rec, req)
	rec.AssertRedirect(t, "/attendance")
	if rec.Header().Get("Set-Cookie") == "" {
		t.Error("expected an error flash")
	}
}
