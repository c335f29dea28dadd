// internal/domain/models/employee.go
package models

// Terminology: Employee Identifiers
//   - ID / id: the numeric primary key assigned by the attendance API
//   - EmployeeID / employeeId: the human-readable code (e.g. "EMP001") used to log in

// Employee is an employee record exactly as the attendance API returns it.
//
// Employees are never hard-deleted from the console's point of view: the
// delete endpoint flips Active to false on the server.
type Employee struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employeeId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Role       Role   `json:"role"`
	Active     bool   `json:"active"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// FullName joins first and last name, skipping an empty last name.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// EmployeeList is the payload of GET /employees.
type EmployeeList struct {
	Employees  []Employee `json:"employees"`
	TotalCount int        `json:"totalCount"`
}

// CreateEmployeeRequest is the body of POST /employees.
type CreateEmployeeRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	Password  string `json:"password"`
	Role      Role   `json:"role,omitempty"`
}

// UpdateEmployeeRequest is the body of PUT /employees/{id}.
// Nil fields are left out of the JSON so the server keeps their values;
// in particular a nil Password never clears the stored credential.
type UpdateEmployeeRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	Password  *string `json:"password,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}
