// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/employees").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/new").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParam is an optional query parameter carried over to the
	// fallback, e.g. "date" keeps the attendance list on the same day.
	PreserveQueryParam string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks the "return" query parameter, then the form value, rejects
// off-site URLs, URLs outside AllowedPrefix and action pages, and otherwise
// builds the fallback.
//
//	ret := navigation.SafeBackURL(r, navigation.AttendanceBackURL)
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}
	if ret != "" && allowed(ret, opts) {
		return ret
	}

	fallback := opts.Fallback
	if opts.PreserveQueryParam == "" {
		return fallback
	}
	param := query.Get(r, opts.PreserveQueryParam)
	if param == "" {
		param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam))
	}
	if param == "" {
		return fallback
	}
	sep := "?"
	if strings.Contains(fallback, "?") {
		sep = "&"
	}
	return fallback + sep + opts.PreserveQueryParam + "=" + url.QueryEscape(param)
}

func allowed(ret string, opts BackURLOptions) bool {
	if opts.AllowedPrefix != "" && ret != opts.AllowedPrefix &&
		!strings.HasPrefix(ret, opts.AllowedPrefix+"?") && !strings.HasPrefix(ret, opts.AllowedPrefix+"/") {
		return false
	}
	path := ret
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, excluded := range opts.ExcludedSubpaths {
		if strings.Contains(path, excluded) {
			return false
		}
	}
	return true
}

// Back URL configurations for the list pages.
var (
	EmployeesBackURL = BackURLOptions{
		AllowedPrefix:    "/employees",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/employees",
	}

	AttendanceBackURL = BackURLOptions{
		AllowedPrefix:      "/attendance",
		ExcludedSubpaths:   []string{"/edit", "/delete", "/new", "/export"},
		Fallback:           "/attendance",
		PreserveQueryParam: "date",
	}
)
