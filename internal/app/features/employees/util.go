// internal/app/features/employees/util.go
package employees

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/attendhub/internal/app/system/inputval"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

const operationFailed = "Operation failed"

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// idParam reads the numeric {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employee id %q", raw)
	}
	return id, nil
}

// joinedDate renders an API timestamp as a short date, or "" when the API
// sent something unparseable.
func joinedDate(s string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("01/02/2006")
		}
	}
	return ""
}

func toRow(e models.Employee) employeeRow {
	return employeeRow{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		FullName:   e.FullName(),
		Email:      e.Email,
		Phone:      e.Phone,
		Role:       e.Role,
		Active:     e.Active,
		Joined:     joinedDate(e.CreatedAt),
	}
}

func clean(r *http.Request, field string) string {
	return strings.TrimSpace(htmlsanitize.PlainText(r.PostFormValue(field)))
}

// readForm copies the posted fields into f and returns the password and the
// first validation problem, if any. The password is never echoed back.
func readForm(r *http.Request, f *employeeForm) (password, problem string) {
	f.FirstName = clean(r, "firstName")
	f.LastName = clean(r, "lastName")
	f.Email = strings.ToLower(clean(r, "email"))
	f.Phone = strings.TrimSpace(r.PostFormValue("phone"))
	f.Address = clean(r, "address")
	f.Role = models.ParseRole(r.PostFormValue("role"))
	if f.Editing {
		f.Active = inputval.Checkbox(r.PostFormValue("active"))
	} else {
		f.Active = true
	}
	password = r.PostFormValue("password")

	res := inputval.Validate(employeeInput{
		FirstName: f.FirstName,
		Phone:     f.Phone,
		Email:     f.Email,
		Creating:  !f.Editing,
		Password:  password,
	})
	return password, res.First()
}

// employeeInput holds the rules checked before an employee is sent to the API.
type employeeInput struct {
	FirstName string `validate:"required" label:"First name"`
	Phone     string `validate:"phone10" label:"Phone number"`
	Email     string `validate:"omitempty,mailbox" label:"Email"`
	Creating  bool
	Password  string `validate:"required_if=Creating true" label:"Password"`
}

func createRequest(f employeeForm, password string) models.CreateEmployeeRequest {
	return models.CreateEmployeeRequest{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Address:   f.Address,
		Password:  password,
		Role:      f.Role,
	}
}

// updateRequest sends every editable field; a blank password is left out so
// the stored credential is kept.
func updateRequest(f employeeForm, password string) models.UpdateEmployeeRequest {
	in := models.UpdateEmployeeRequest{
		FirstName: &f.FirstName,
		LastName:  &f.LastName,
		Email:     &f.Email,
		Phone:     &f.Phone,
		Address:   &f.Address,
		Role:      &f.Role,
		Active:    &f.Active,
	}
	if password != "" {
		in.Password = &password
	}
	return in
}
