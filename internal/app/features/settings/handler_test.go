package settings

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	attendancestore "github.com/dalemusser/attendhub/internal/app/store/attendance"
	identitystore "github.com/dalemusser/attendhub/internal/app/store/identity"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/dalemusser/attendhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	client := api.Client(t)
	logger := zap.NewNop()
	sm := testutil.NewSessionManager(t)
	h := NewHandler(attendancestore.New(client), identitystore.New(client), "", time.UTC, sm, uierrors.NewErrorLogger(logger, sm), logger)
	return h, api
}

func TestLoad_DefaultsWhenUnconfigured(t *testing.T) {
	h, _ := newTestHandler(t)

	data, ok := h.load(httptest.NewRecorder(), testutil.NewAuthenticatedRequest("GET", "/settings"))
	if !ok {
		t.Fatal("expected page data")
	}
	if data.Error != "" {
		t.Errorf("unexpected error %q", data.Error)
	}
	if data.Tab != "gps" || data.GPS.Radius != "100" || !data.GPS.ValidationEnabled {
		t.Errorf("GPS defaults: %+v", data.GPS)
	}
	if data.Profile == nil || data.Profile.EmployeeID != testutil.FakeAdminID || data.Profile.Initials != "TA" {
		t.Errorf("profile: %+v", data.Profile)
	}
	if data.Profile.Address != "Not provided" {
		t.Errorf("Address: got %q", data.Profile.Address)
	}
}

func TestLoad_StoredConfig(t *testing.T) {
	h, api := newTestHandler(t)
	off := false
	api.SetGPS(models.GPSConfig{OfficeLatitude: 40.7128, OfficeLongitude: -74.006, AllowedRadius: 250, LocationName: "HQ", GPSValidationEnabled: &off})

	data, _ := h.load(httptest.NewRecorder(), testutil.NewAuthenticatedRequest("GET", "/settings?tab=profile"))
	if data.Tab != "profile" {
		t.Errorf("Tab: got %q", data.Tab)
	}
	if data.GPS.Latitude != "40.7128" || data.GPS.Longitude != "-74.006" || data.GPS.Radius != "250" || data.GPS.ValidationEnabled {
		t.Errorf("GPS: %+v", data.GPS)
	}
	if data.GPS.MapsLink != "https://maps.google.com/maps?q=40.7128%2C-74.006" {
		t.Errorf("MapsLink: got %q", data.GPS.MapsLink)
	}
}

func TestLoad_SessionExpiry(t *testing.T) {
	h, _ := newTestHandler(t)
	sess := testutil.AdminSession()
	sess.ExpiresAt = time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC)

	data, _ := h.load(httptest.NewRecorder(), testutil.WithSession(httptest.NewRequest("GET", "/settings?tab=profile", nil), sess))
	if data.Profile == nil || data.Profile.SessionExpires != "March 15, 2024 05:30 PM" {
		t.Errorf("SessionExpires: %+v", data.Profile)
	}
}

func TestLoad_ProfileFailure(t *testing.T) {
	h, api := newTestHandler(t)
	api.Fail("GET", "/auth/user", http.StatusInternalServerError, "INTERNAL", "")

	data, ok := h.load(httptest.NewRecorder(), testutil.NewAuthenticatedRequest("GET", "/settings"))
	if !ok {
		t.Fatal("expected page data")
	}
	if data.Error != "Failed to load settings" || data.Profile != nil {
		t.Errorf("got error %q profile %+v", data.Error, data.Profile)
	}
}

func TestHandleGPS_Success(t *testing.T) {
	h, api := newTestHandler(t)

	rec := testutil.NewRecorder()
	testutil.Serve(h.HandleGPS, rec, testutil.NewFormRequest("/settings/gps", url.Values{
		"officeLatitude":       {"12.9716"},
		"officeLongitude":      {"77.5946"},
		"allowedRadius":        {"150"},
		"locationName":         {"Bengaluru <i>Office</i>"},
		"gpsValidationEnabled": {"on"},
	}))

	rec.AssertRedirect(t, "/settings?tab=gps")
	got := api.GPS()
	if got == nil {
		t.Fatal("expected config to be stored")
	}
	if got.OfficeLatitude != 12.9716 || got.OfficeLongitude != 77.5946 || got.AllowedRadius != 150 {
		t.Errorf("stored: %+v", got)
	}
	if got.LocationName != "Bengaluru Office" || !got.ValidationEnabled() {
		t.Errorf("stored: %+v", got)
	}
}

func TestHandleGPS_Validation(t *testing.T) {
	valid := func() url.Values {
		return url.Values{"officeLatitude": {"10"}, "officeLongitude": {"20"}, "allowedRadius": {"100"}}
	}
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"latitude too high", "officeLatitude", "90.5"},
		{"latitude not a number", "officeLatitude", "north"},
		{"longitude too low", "officeLongitude", "-180.1"},
		{"radius too small", "allowedRadius", "9"},
		{"radius too large", "allowedRadius", "1001"},
		{"radius missing", "allowedRadius", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, api := newTestHandler(t)
			form := valid()
			form.Set(tt.field, tt.value)

			rec := testutil.NewRecorder()
			testutil.Serve(h.HandleGPS, rec, testutil.NewFormRequest("/settings/gps", form))
			rec.AssertStatus(t, http.StatusBadRequest)
			if api.GPS() != nil {
				t.Error("invalid form must not reach the API")
			}
		})
	}
}

func TestHandleGPS_BoundsAccepted(t *testing.T) {
	for _, radius := range []string{"10", "1000"} {
		h, api := newTestHandler(t)
		rec := testutil.NewRecorder()
		testutil.Serve(h.HandleGPS, rec, testutil.NewFormRequest("/settings/gps", url.Values{
			"officeLatitude": {"-90"}, "officeLongitude": {"180"}, "allowedRadius": {radius},
		}))
		rec.AssertRedirect(t, "/settings?tab=gps")
		if api.GPS() == nil {
			t.Errorf("radius %s: expected config to be stored", radius)
		}
	}
}

func TestHandleGPS_APIError(t *testing.T) {
	h, api := newTestHandler(t)
	api.Fail("PUT", "/attendance/gps-config", http.StatusInternalServerError, "INTERNAL", "")

	rec := testutil.NewRecorder()
	testutil.Serve(h.HandleGPS, rec, testutil.NewFormRequest("/settings/gps", url.Values{
		"officeLatitude": {"1"}, "officeLongitude": {"2"}, "allowedRadius": {"100"},
	}))
	rec.AssertStatus(t, http.StatusBadGateway)
}

func TestHandleGPS_ExpiredSession(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewFormRequest("/settings/gps", url.Values{
		"officeLatitude": {"1"}, "officeLongitude": {"2"}, "allowedRadius": {"100"},
	})
	req = testutil.WithSession(req, &models.Session{Token: "stale"})

	rec := testutil.NewRecorder()
	testutil.Serve(h.HandleGPS, rec, req)
	rec.AssertRedirect(t, "/login")
}

func TestMapsLink(t *testing.T) {
	if got := MapsLink(DefaultMapsURL, 0, 0); got != "https://maps.google.com/maps?q=0%2C0" {
		t.Errorf("MapsLink: got %q", got)
	}
}
