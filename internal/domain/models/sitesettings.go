// internal/domain/models/sitesettings.go
package models

// DefaultSiteName is the default site name used when none is configured.
const DefaultSiteName = "AttendHub"
