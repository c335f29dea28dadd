// internal/domain/models/dashboard.go
package models

// DashboardStats is recomputed on every dashboard load and never stored.
type DashboardStats struct {
	TotalEmployees int
	PresentToday   int
	AbsentToday    int
	LateToday      int
}
