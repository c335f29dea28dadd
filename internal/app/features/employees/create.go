// internal/app/features/employees/create.go
package employees

import (
	"net/http"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/formutil"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeNew renders the "Add Employee" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, employeeForm{Role: models.RoleEmployee, Active: true})
}

// HandleCreate processes the Add Employee form POST.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/employees")
		return
	}

	var form employeeForm
	password, problem := readForm(r, &form)
	if problem != "" {
		form.SetError(problem)
		h.renderForm(w, r, http.StatusBadRequest, form)
		return
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create employee")
	defer cancel()

	emp, err := h.Employees.Create(ctx, sess, createRequest(form, password))
	if err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return
		}
		h.Log.Warn("create employee failed", zap.Error(err))
		form.SetError(uierrors.UserMessage(err, operationFailed))
		h.renderForm(w, r, http.StatusBadGateway, form)
		return
	}

	h.Log.Info("employee created", zap.Int64("id", emp.ID), zap.String("employee_id", emp.EmployeeID))
	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Employee "+emp.FullName()+" created")
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, form employeeForm) {
	title := "Add Employee"
	if form.Editing {
		title = "Edit Employee"
	}
	form.Roles = models.AllRoles
	formutil.SetBase(&form.Base, w, r, title, "/employees")
	formutil.Render(w, r, status, "employee_form", form)
}
