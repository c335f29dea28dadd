// internal/app/features/settings/types.go
package settings

import (
	"github.com/dalemusser/attendhub/internal/app/system/formutil"
)

const (
	tabGPS     = "gps"
	tabProfile = "profile"
)

// gpsForm holds the geofence fields as typed, so a rejected value is shown
// back unchanged.
type gpsForm struct {
	Latitude          string
	Longitude         string
	Radius            string
	LocationName      string
	ValidationEnabled bool
	MapsLink          string
}

type profileView struct {
	Initials    string
	FullName    string
	EmployeeID  string
	Email       string
	Phone       string
	Address     string
	Role        string
	MemberSince string

	SessionExpires string // blank when the token carries no expiry
}

type settingsData struct {
	formutil.Base

	Tab     string
	GPS     gpsForm
	Profile *profileView

	MinRadius int
	MaxRadius int
}
