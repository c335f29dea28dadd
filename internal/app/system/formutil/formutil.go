// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// the values the administrator typed, an error message, and the page chrome.
//
// Example usage:
//
//	type employeeForm struct {
//		formutil.Base
//		FirstName string
//		Phone     string
//	}
//
//	data := employeeForm{FirstName: first, Phone: phone}
//	formutil.SetBase(&data.Base, w, r, "Add Employee", "/employees")
//	data.SetError("Phone number must be 10 digits")
//	formutil.Render(w, r, http.StatusBadRequest, "employee_form", data)
package formutil

import (
	"net/http"

	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM
	Error string
}

// SetBase populates the page chrome for a form.
func SetBase(b *Base, w http.ResponseWriter, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(w, r, title, backDefault)
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = msg
}

// HasError reports whether an error message is set.
func (b *Base) HasError() bool {
	return b.Error != ""
}

// Render writes status and then renders the named template. The status is
// written first so a failed render still reports the intended code.
func Render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.WriteHeader(status)
	templates.Render(w, r, name, data)
}
