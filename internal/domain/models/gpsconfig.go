// internal/domain/models/gpsconfig.go
package models

// GPSConfig is the singleton office geofence used by the server to validate
// check-in and check-out locations.
type GPSConfig struct {
	ID                   *int64  `json:"id,omitempty"`
	OfficeLatitude       float64 `json:"officeLatitude"`
	OfficeLongitude      float64 `json:"officeLongitude"`
	AllowedRadius        float64 `json:"allowedRadius"` // meters
	GPSValidationEnabled *bool   `json:"gpsValidationEnabled,omitempty"`
	LocationName         string  `json:"locationName,omitempty"`
	CreatedAt            int64   `json:"createdAt,omitempty"`
	UpdatedAt            int64   `json:"updatedAt,omitempty"`
}

// Geofence radius bounds accepted by the settings form.
const (
	MinAllowedRadius     = 10
	MaxAllowedRadius     = 1000
	DefaultAllowedRadius = 100
)

// DefaultGPSConfig is shown when the server has no configuration yet.
func DefaultGPSConfig() GPSConfig {
	return GPSConfig{AllowedRadius: DefaultAllowedRadius}
}

// ValidationEnabled reports the enable flag, treating an absent flag as enabled.
func (g GPSConfig) ValidationEnabled() bool {
	return g.GPSValidationEnabled == nil || *g.GPSValidationEnabled
}
