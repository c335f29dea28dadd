// internal/app/features/employees/delete.go
package employees

import (
	"net/http"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/navigation"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete deactivates an employee. The API keeps the record with
// active=false; nothing is removed.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ret := navigation.SafeBackURL(r, navigation.EmployeesBackURL)

	id, err := idParam(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad employee id", err, "Invalid employee id.", "/employees")
		return
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "deactivate employee")
	defer cancel()

	if err := h.Employees.Deactivate(ctx, sess, id); err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return
		}
		h.Log.Warn("deactivate employee failed", zap.Int64("id", id), zap.Error(err))
		h.SessionMgr.AddFlash(w, r, auth.FlashError, uierrors.UserMessage(err, "Failed to deactivate employee"))
		http.Redirect(w, r, ret, http.StatusSeeOther)
		return
	}

	h.Log.Info("employee deactivated", zap.Int64("id", id))
	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Employee deactivated")
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
