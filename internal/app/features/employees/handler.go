// internal/app/features/employees/handler.go
package employees

import (
	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler serves the employee directory: list, add, edit and deactivate.
type Handler struct {
	Employees  *employeestore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(emps *employeestore.Store, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Employees:  emps,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}
