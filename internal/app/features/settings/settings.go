// internal/app/features/settings/settings.go
package settings

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/formutil"
	"github.com/dalemusser/attendhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/attendhub/internal/app/system/inputval"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/attendhub/internal/app/system/timezones"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

const settingsFailed = "Failed to load settings"

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MapsLink points base at lat,lon.
func MapsLink(base string, lat, lon float64) string {
	return base + "?q=" + url.QueryEscape(formatCoord(lat)+","+formatCoord(lon))
}

func (h *Handler) toForm(c models.GPSConfig) gpsForm {
	return gpsForm{
		Latitude:          formatCoord(c.OfficeLatitude),
		Longitude:         formatCoord(c.OfficeLongitude),
		Radius:            formatCoord(c.AllowedRadius),
		LocationName:      c.LocationName,
		ValidationEnabled: c.ValidationEnabled(),
		MapsLink:          MapsLink(h.MapsURL, c.OfficeLatitude, c.OfficeLongitude),
	}
}

func toProfile(u models.UserInfo) *profileView {
	p := &profileView{
		Initials:    u.Initials(),
		FullName:    strings.TrimSpace(u.FirstName + " " + u.LastName),
		EmployeeID:  u.EmployeeID,
		Email:       u.Email,
		Phone:       u.Phone,
		Address:     u.Address,
		Role:        string(u.Role),
		MemberSince: memberSince(u.CreatedAt),
	}
	if p.Email == "" {
		p.Email = "Not provided"
	}
	if p.Address == "" {
		p.Address = "Not provided"
	}
	return p
}

func memberSince(s string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", timezones.DayLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(timezones.DisplayDateLong)
		}
	}
	return ""
}

func (h *Handler) loc() *time.Location {
	if h.Loc == nil {
		return time.Local
	}
	return h.Loc
}

func tabParam(s string) string {
	if s == tabProfile {
		return tabProfile
	}
	return tabGPS
}

// ServeSettings handles GET /settings?tab=gps|profile.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, data)
}

// load reads the geofence and the live profile. A geofence failure falls
// back to the defaults so the form still renders. It reports false when the
// response has already been written.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (settingsData, bool) {
	data := settingsData{Tab: tabParam(query.Get(r, "tab"))}

	cfg, err := h.loadGPS(r)
	if err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return data, false
		}
		h.Log.Warn("load gps config failed", zap.Error(err))
		data.SetError(uierrors.UserMessage(err, settingsFailed))
		cfg = models.DefaultGPSConfig()
	}
	data.GPS = h.toForm(cfg)

	if !h.loadProfile(w, r, &data) {
		return data, false
	}
	return data, true
}

// HandleGPS handles POST /settings/gps.
func (h *Handler) HandleGPS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/settings")
		return
	}

	data := settingsData{
		Tab: tabGPS,
		GPS: gpsForm{
			Latitude:          strings.TrimSpace(r.PostFormValue("officeLatitude")),
			Longitude:         strings.TrimSpace(r.PostFormValue("officeLongitude")),
			Radius:            strings.TrimSpace(r.PostFormValue("allowedRadius")),
			LocationName:      strings.TrimSpace(htmlsanitize.PlainText(r.PostFormValue("locationName"))),
			ValidationEnabled: inputval.Checkbox(r.PostFormValue("gpsValidationEnabled")),
		},
	}

	cfg, problem := readGPS(data.GPS)
	if problem != "" {
		data.SetError(problem)
		h.rerender(w, r, http.StatusBadRequest, data)
		return
	}
	data.GPS.MapsLink = MapsLink(h.MapsURL, cfg.OfficeLatitude, cfg.OfficeLongitude)

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update gps config")
	defer cancel()

	if _, err := h.Attendance.UpdateGPSConfig(ctx, sess, cfg); err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return
		}
		h.Log.Warn("update gps config failed", zap.Error(err))
		data.SetError(uierrors.UserMessage(err, "Failed to update GPS configuration"))
		h.rerender(w, r, http.StatusBadGateway, data)
		return
	}

	h.Log.Info("gps config updated",
		zap.Float64("lat", cfg.OfficeLatitude),
		zap.Float64("lon", cfg.OfficeLongitude),
		zap.Float64("radius", cfg.AllowedRadius))
	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "GPS configuration updated successfully")
	http.Redirect(w, r, "/settings?tab=gps", http.StatusSeeOther)
}

// gpsInput holds the rules for the typed geofence.
type gpsInput struct {
	Latitude  string `validate:"floatin=-90:90" label:"Latitude"`
	Longitude string `validate:"floatin=-180:180" label:"Longitude"`
	Radius    string `validate:"floatin=10:1000" msg:"Allowed radius must be between 10 and 1000 meters"`
}

// readGPS validates the typed geofence and converts it for the API.
func readGPS(f gpsForm) (models.GPSConfig, string) {
	res := inputval.Validate(gpsInput{Latitude: f.Latitude, Longitude: f.Longitude, Radius: f.Radius})
	if res.HasErrors() {
		return models.GPSConfig{}, res.First()
	}
	lat, _ := inputval.ParseFloatIn(f.Latitude, -90, 90)
	lon, _ := inputval.ParseFloatIn(f.Longitude, -180, 180)
	radius, _ := inputval.ParseFloatIn(f.Radius, models.MinAllowedRadius, models.MaxAllowedRadius)
	enabled := f.ValidationEnabled
	return models.GPSConfig{
		OfficeLatitude:       lat,
		OfficeLongitude:      lon,
		AllowedRadius:        radius,
		LocationName:         f.LocationName,
		GPSValidationEnabled: &enabled,
	}, ""
}

func (h *Handler) loadGPS(r *http.Request) (models.GPSConfig, error) {
	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get gps config")
	defer cancel()
	return h.Attendance.GPSConfig(ctx, sess)
}

// loadProfile fills data.Profile from the live /auth/user. It reports false
// when the response has already been written.
func (h *Handler) loadProfile(w http.ResponseWriter, r *http.Request, data *settingsData) bool {
	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "current user")
	defer cancel()

	u, err := h.Identity.CurrentUser(ctx, sess)
	if err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return false
		}
		h.Log.Warn("load profile failed", zap.Error(err))
		if !data.HasError() {
			data.SetError(uierrors.UserMessage(err, settingsFailed))
		}
		return true
	}
	data.Profile = toProfile(u)
	if sess != nil && !sess.ExpiresAt.IsZero() {
		data.Profile.SessionExpires = sess.ExpiresAt.In(h.loc()).Format(timezones.DisplayDateLong + " " + timezones.DisplayTime)
	}
	return true
}

// rerender shows the GPS form again with data's error, keeping the profile tab
// populated when the API still answers.
func (h *Handler) rerender(w http.ResponseWriter, r *http.Request, status int, data settingsData) {
	if !h.loadProfile(w, r, &data) {
		return
	}
	h.render(w, r, status, data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data settingsData) {
	data.MinRadius = models.MinAllowedRadius
	data.MaxRadius = models.MaxAllowedRadius
	formutil.SetBase(&data.Base, w, r, "Settings", "/dashboard")
	formutil.Render(w, r, status, "settings", data)
}
