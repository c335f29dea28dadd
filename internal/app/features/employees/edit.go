// internal/app/features/employees/edit.go
package employees

import (
	"net/http"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeEdit renders the edit form pre-filled from the API.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad employee id", err, "Invalid employee id.", "/employees")
		return
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get employee")
	defer cancel()

	emp, err := h.Employees.Get(ctx, sess, id)
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, "get employee failed", err, "Failed to load employee", "/employees")
		return
	}

	h.renderForm(w, r, http.StatusOK, employeeForm{
		Editing:    true,
		ID:         emp.ID,
		EmployeeID: emp.EmployeeID,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Email:      emp.Email,
		Phone:      emp.Phone,
		Address:    emp.Address,
		Role:       emp.Role,
		Active:     emp.Active,
	})
}

// HandleEdit processes the edit form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad employee id", err, "Invalid employee id.", "/employees")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/employees")
		return
	}

	form := employeeForm{
		Editing:    true,
		ID:         id,
		EmployeeID: clean(r, "employeeId"),
	}
	password, problem := readForm(r, &form)
	if problem != "" {
		form.SetError(problem)
		h.renderForm(w, r, http.StatusBadRequest, form)
		return
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update employee")
	defer cancel()

	emp, err := h.Employees.Update(ctx, sess, id, updateRequest(form, password))
	if err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return
		}
		h.Log.Warn("update employee failed", zap.Int64("id", id), zap.Error(err))
		form.SetError(uierrors.UserMessage(err, operationFailed))
		h.renderForm(w, r, http.StatusBadGateway, form)
		return
	}

	h.Log.Info("employee updated", zap.Int64("id", id))
	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Employee "+emp.FullName()+" updated")
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}
