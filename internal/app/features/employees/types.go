// internal/app/features/employees/types.go
package employees

import (
	"github.com/dalemusser/attendhub/internal/app/system/formutil"
	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

// Table row for the employee list
type employeeRow struct {
	ID         int64
	EmployeeID string
	FullName   string
	Email      string
	Phone      string
	Role       models.Role
	Active     bool
	Joined     string
}

type listData struct {
	viewdata.BaseVM

	SearchQuery string
	Shown       int
	Total       int
	Rows        []employeeRow
	Error       string
}

// employeeForm backs both the add and the edit page.
type employeeForm struct {
	formutil.Base

	Editing    bool
	ID         int64
	EmployeeID string // read-only on edit; assigned by the API

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	Role      models.Role
	Active    bool

	Roles []models.RoleOption
}

// Action is where the form posts.
func (f employeeForm) Action() string {
	if f.Editing {
		return "/employees/" + formatID(f.ID) + "/edit"
	}
	return "/employees"
}
