// internal/app/features/attendance/delete.go
package attendance

import (
	"net/http"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/navigation"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete removes an attendance record and returns to the list.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ret := navigation.SafeBackURL(r, navigation.AttendanceBackURL)

	id, err := idParam(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad record id", err, "Invalid record id.", "/attendance")
		return
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete attendance")
	defer cancel()

	if err := h.Attendance.Delete(ctx, sess, id); err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return
		}
		h.Log.Warn("delete attendance failed", zap.Int64("id", id), zap.Error(err))
		h.SessionMgr.AddFlash(w, r, auth.FlashError, uierrors.UserMessage(err, "Failed to delete record"))
		http.Redirect(w, r, ret, http.StatusSeeOther)
		return
	}

	h.Log.Info("attendance deleted", zap.Int64("id", id))
	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Attendance record deleted")
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
