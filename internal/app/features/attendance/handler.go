// internal/app/features/attendance/handler.go
package attendance

import (
	"time"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	attendancestore "github.com/dalemusser/attendhub/internal/app/store/attendance"
	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler serves the attendance table, manual entry, edits and exports.
// Loc is the console time zone used for day windows and displayed times.
type Handler struct {
	Attendance *attendancestore.Store
	Employees  *employeestore.Store
	Loc        *time.Location
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger

	now func() time.Time
}

func NewHandler(att *attendancestore.Store, emps *employeestore.Store, loc *time.Location, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		Attendance: att,
		Employees:  emps,
		Loc:        loc,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
		now:        time.Now,
	}
}
