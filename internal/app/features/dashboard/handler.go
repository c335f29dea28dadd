// internal/app/features/dashboard/handler.go
package dashboard

import (
	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	metricsstore "github.com/dalemusser/attendhub/internal/app/store/metrics"
	"go.uber.org/zap"
)

// DefaultRecentLimit is how many records the activity list shows.
const DefaultRecentLimit = 5

type Handler struct {
	Employees   metricsstore.EmployeeLister
	Attendance  metricsstore.AttendanceLister
	Policy      metricsstore.Policy
	RecentLimit int
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(emps metricsstore.EmployeeLister, att metricsstore.AttendanceLister, policy metricsstore.Policy, recentLimit int, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &Handler{
		Employees:   emps,
		Attendance:  att,
		Policy:      policy,
		RecentLimit: recentLimit,
		ErrLog:      errLog,
		Log:         logger,
	}
}
