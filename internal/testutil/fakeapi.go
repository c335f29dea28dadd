package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/dalemusser/attendhub/internal/app/system/apiclient"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Credentials the fake API accepts.
const (
	FakeToken      = "test-token"
	FakeAdminID    = "ADMIN001"
	FakeAdminPass  = "password123"
	fakeExpiresIn  = 3600
	fakeAdminEmail = "admin@test.com"
)

// RecordedRequest is one call the fake API received.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
	Auth   string
}

// FakeAPI is an in-memory attendance API served over httptest. It speaks the
// same envelope as the real service and rejects calls without FakeToken.
type FakeAPI struct {
	Server *httptest.Server

	mu        sync.Mutex
	employees []models.Employee
	records   []models.AttendanceRecord
	gps       *models.GPSConfig
	nextID    int64
	overrides map[string]http.HandlerFunc
	requests  []RecordedRequest
}

// NewFakeAPI starts a fake API that is shut down when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{nextID: 100, overrides: map[string]http.HandlerFunc{}}
	f.Server = httptest.NewServer(f.router())
	t.Cleanup(f.Server.Close)
	return f
}

// Client returns an apiclient pointed at the fake.
func (f *FakeAPI) Client(t *testing.T) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(f.Server.URL, apiclient.WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	return c
}

// Override replaces the handler for one route, e.g. ("GET", "/employees").
// Overrides run after the bearer check.
func (f *FakeAPI) Override(method, pattern string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides[method+" "+pattern] = h
}

// Fail makes one route answer with an error envelope.
func (f *FakeAPI) Fail(method, pattern string, status int, code, msg string) {
	f.Override(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, status, code, msg)
	})
}

// AddEmployee stores e, assigning an ID when it has none.
func (f *FakeAPI) AddEmployee(e models.Employee) models.Employee {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == 0 {
		f.nextID++
		e.ID = f.nextID
	}
	f.employees = append(f.employees, e)
	return e
}

// AddRecord stores rec, assigning an ID when it has none.
func (f *FakeAPI) AddRecord(rec models.AttendanceRecord) models.AttendanceRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec.ID == 0 {
		f.nextID++
		rec.ID = f.nextID
	}
	f.records = append(f.records, rec)
	return rec
}

// SetGPS sets the stored geofence configuration.
func (f *FakeAPI) SetGPS(c models.GPSConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gps = &c
}

// Employees returns a copy of the stored employees.
func (f *FakeAPI) Employees() []models.Employee {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Employee(nil), f.employees...)
}

// Records returns a copy of the stored attendance records.
func (f *FakeAPI) Records() []models.AttendanceRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.AttendanceRecord(nil), f.records...)
}

// GPS returns the stored geofence configuration, if any.
func (f *FakeAPI) GPS() *models.GPSConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gps == nil {
		return nil
	}
	c := *f.gps
	return &c
}

// Requests returns every request received so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// LastRequest returns the most recent request with the given method and
// path.
func (f *FakeAPI) LastRequest(method, path string) (RecordedRequest, bool) {
	reqs := f.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return RecordedRequest{}, false
}

// WriteData writes a success envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

// WriteError writes a failure envelope.
func WriteError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": msg},
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Routing                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (f *FakeAPI) router() http.Handler {
	r := chi.NewRouter()
	r.Use(f.record)

	r.Post("/auth/login", f.wrap("POST", "/auth/login", f.login, false))

	r.Group(func(pr chi.Router) {
		pr.Get("/auth/user", f.wrap("GET", "/auth/user", f.currentUser, true))

		pr.Get("/employees", f.wrap("GET", "/employees", f.listEmployees, true))
		pr.Post("/employees", f.wrap("POST", "/employees", f.createEmployee, true))
		pr.Get("/employees/{id}", f.wrap("GET", "/employees/{id}", f.getEmployee, true))
		pr.Put("/employees/{id}", f.wrap("PUT", "/employees/{id}", f.updateEmployee, true))
		pr.Delete("/employees/{id}", f.wrap("DELETE", "/employees/{id}", f.deleteEmployee, true))

		pr.Get("/attendance", f.wrap("GET", "/attendance", f.listAttendance, true))
		pr.Post("/attendance/manual", f.wrap("POST", "/attendance/manual", f.createManual, true))
		pr.Get("/attendance/gps-config", f.wrap("GET", "/attendance/gps-config", f.getGPS, true))
		pr.Put("/attendance/gps-config", f.wrap("PUT", "/attendance/gps-config", f.putGPS, true))
		pr.Put("/attendance/{id}", f.wrap("PUT", "/attendance/{id}", f.updateRecord, true))
		pr.Delete("/attendance/{id}", f.wrap("DELETE", "/attendance/{id}", f.deleteRecord, true))
	})
	return r
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			dec := json.RawMessage{}
			if err := json.NewDecoder(r.Body).Decode(&dec); err == nil {
				body = dec
			}
		}
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   body,
			Auth:   r.Header.Get("Authorization"),
		})
		f.mu.Unlock()
		r = r.WithContext(withBody(r.Context(), body))
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) wrap(method, pattern string, h http.HandlerFunc, needsAuth bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if needsAuth && r.Header.Get("Authorization") != "Bearer "+FakeToken {
			WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}
		f.mu.Lock()
		o := f.overrides[method+" "+pattern]
		f.mu.Unlock()
		if o != nil {
			o(w, r)
			return
		}
		h(w, r)
	}
}

func decodeBody(r *http.Request, v any) error {
	body := bodyFrom(r.Context())
	if len(body) == 0 {
		return fmt.Errorf("empty body")
	}
	return json.Unmarshal(body, v)
}

func idParam(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

/*─────────────────────────────────────────────────────────────────────────────*
| Auth                                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if err := decodeBody(r, &in); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if in.EmployeeID != FakeAdminID || in.Password != FakeAdminPass {
		WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid employee ID or password")
		return
	}
	WriteData(w, http.StatusOK, models.AuthData{
		Token:     FakeToken,
		ExpiresIn: fakeExpiresIn,
		User:      AdminSession().User,
	})
}

func (f *FakeAPI) currentUser(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, models.UserInfo{
		ID:         1,
		EmployeeID: FakeAdminID,
		FirstName:  "Test",
		LastName:   "Admin",
		Email:      fakeAdminEmail,
		Phone:      "555-0100",
		Role:       models.RoleAdmin,
		Active:     true,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Employees                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (f *FakeAPI) listEmployees(w http.ResponseWriter, r *http.Request) {
	emps := f.Employees()
	if emps == nil {
		emps = []models.Employee{}
	}
	WriteData(w, http.StatusOK, models.EmployeeList{Employees: emps, TotalCount: len(emps)})
}

func (f *FakeAPI) getEmployee(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	for _, e := range f.Employees() {
		if e.ID == id {
			WriteData(w, http.StatusOK, e)
			return
		}
	}
	WriteError(w, http.StatusNotFound, "NOT_FOUND", "Employee not found")
}

func (f *FakeAPI) createEmployee(w http.ResponseWriter, r *http.Request) {
	var in models.CreateEmployeeRequest
	if err := decodeBody(r, &in); err != nil || in.FirstName == "" || in.Phone == "" || in.Password == "" {
		WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "First name, phone and password are required")
		return
	}
	role := in.Role
	if role == "" {
		role = models.RoleEmployee
	}
	e := f.AddEmployee(models.Employee{
		EmployeeID: fmt.Sprintf("EMP%03d", len(f.Employees())+1),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		Role:       role,
		Active:     true,
	})
	WriteData(w, http.StatusCreated, e)
}

func (f *FakeAPI) updateEmployee(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateEmployeeRequest
	if err := decodeBody(r, &in); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	id := idParam(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.employees {
		e := &f.employees[i]
		if e.ID != id {
			continue
		}
		setIf(&e.FirstName, in.FirstName)
		setIf(&e.LastName, in.LastName)
		setIf(&e.Email, in.Email)
		setIf(&e.Phone, in.Phone)
		setIf(&e.Address, in.Address)
		if in.Role != nil {
			e.Role = *in.Role
		}
		if in.Active != nil {
			e.Active = *in.Active
		}
		WriteData(w, http.StatusOK, *e)
		return
	}
	WriteError(w, http.StatusNotFound, "NOT_FOUND", "Employee not found")
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (f *FakeAPI) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.employees {
		if f.employees[i].ID == id {
			f.employees[i].Active = false
			WriteData(w, http.StatusOK, nil)
			return
		}
	}
	WriteError(w, http.StatusNotFound, "NOT_FOUND", "Employee not found")
}

/*─────────────────────────────────────────────────────────────────────────────*
| Attendance                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (f *FakeAPI) listAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	emp := q.Get("employeeId")
	start, _ := strconv.ParseInt(q.Get("startDate"), 10, 64)
	end, _ := strconv.ParseInt(q.Get("endDate"), 10, 64)

	out := []models.AttendanceRecord{}
	for _, rec := range f.Records() {
		if emp != "" && rec.EmployeeID != emp {
			continue
		}
		if start > 0 && rec.CheckInTime < start {
			continue
		}
		if end > 0 && rec.CheckInTime > end {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CheckInTime > out[j].CheckInTime })
	WriteData(w, http.StatusOK, models.AttendanceList{Records: out, TotalCount: len(out)})
}

func (f *FakeAPI) createManual(w http.ResponseWriter, r *http.Request) {
	var in models.ManualAttendanceCreate
	if err := decodeBody(r, &in); err != nil || in.EmployeeID == "" || in.CheckInTime == 0 {
		WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Employee and check-in time are required")
		return
	}
	name := ""
	for _, e := range f.Employees() {
		if e.EmployeeID == in.EmployeeID {
			name = e.FullName()
		}
	}
	rec := f.AddRecord(models.AttendanceRecord{
		EmployeeID:   in.EmployeeID,
		EmployeeName: name,
		CheckInTime:  in.CheckInTime,
		CheckOutTime: in.CheckOutTime,
		Status:       in.Status,
	})
	WriteData(w, http.StatusCreated, rec)
}

func (f *FakeAPI) updateRecord(w http.ResponseWriter, r *http.Request) {
	var in map[string]json.RawMessage
	if err := decodeBody(r, &in); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	id := idParam(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		rec := &f.records[i]
		if rec.ID != id {
			continue
		}
		if v, ok := in["checkInTime"]; ok {
			_ = json.Unmarshal(v, &rec.CheckInTime)
		}
		if v, ok := in["checkOutTime"]; ok {
			if string(v) == "null" {
				rec.CheckOutTime = nil
			} else {
				var ts int64
				_ = json.Unmarshal(v, &ts)
				rec.CheckOutTime = &ts
			}
		}
		if v, ok := in["status"]; ok {
			_ = json.Unmarshal(v, &rec.Status)
		}
		WriteData(w, http.StatusOK, *rec)
		return
	}
	WriteError(w, http.StatusNotFound, "NOT_FOUND", "Attendance record not found")
}

func (f *FakeAPI) deleteRecord(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			WriteData(w, http.StatusOK, nil)
			return
		}
	}
	WriteError(w, http.StatusNotFound, "NOT_FOUND", "Attendance record not found")
}

func (f *FakeAPI) getGPS(w http.ResponseWriter, r *http.Request) {
	c := f.GPS()
	if c == nil {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "GPS configuration not found")
		return
	}
	WriteData(w, http.StatusOK, c)
}

func (f *FakeAPI) putGPS(w http.ResponseWriter, r *http.Request) {
	var in models.GPSConfig
	if err := decodeBody(r, &in); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if in.ID == nil {
		id := int64(1)
		in.ID = &id
	}
	f.SetGPS(in)
	WriteData(w, http.StatusOK, in)
}
