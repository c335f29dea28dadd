// Package employeestore is the employee directory, read and written through
// the attendance API.
package employeestore

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalemusser/attendhub/internal/app/system/apiclient"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

// Store wraps the /employees endpoints.
type Store struct {
	api *apiclient.Client
}

// New returns an employee store backed by api.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

func path(id int64) string {
	return fmt.Sprintf("/employees/%d", id)
}

// List returns every employee the API knows, active or not.
func (s *Store) List(ctx context.Context, sess *models.Session) ([]models.Employee, error) {
	var out models.EmployeeList
	if err := s.api.Get(ctx, sess, "/employees", nil, &out); err != nil {
		return nil, err
	}
	return out.Employees, nil
}

// Get returns one employee by numeric ID.
func (s *Store) Get(ctx context.Context, sess *models.Session, id int64) (models.Employee, error) {
	var out models.Employee
	if err := s.api.Get(ctx, sess, path(id), nil, &out); err != nil {
		return models.Employee{}, err
	}
	return out, nil
}

// Create adds an employee and returns it as stored.
func (s *Store) Create(ctx context.Context, sess *models.Session, in models.CreateEmployeeRequest) (models.Employee, error) {
	var out models.Employee
	if err := s.api.Post(ctx, sess, "/employees", in, &out); err != nil {
		return models.Employee{}, err
	}
	return out, nil
}

// Update applies the non-nil fields of in.
func (s *Store) Update(ctx context.Context, sess *models.Session, id int64, in models.UpdateEmployeeRequest) (models.Employee, error) {
	var out models.Employee
	if err := s.api.Put(ctx, sess, path(id), in, &out); err != nil {
		return models.Employee{}, err
	}
	return out, nil
}

// Deactivate issues DELETE; the API keeps the record with active=false.
func (s *Store) Deactivate(ctx context.Context, sess *models.Session, id int64) error {
	return s.api.Delete(ctx, sess, path(id), nil)
}

// Filter keeps employees whose first name, last name, employee code or email
// contains q, ignoring case. An empty q keeps everyone.
func Filter(emps []models.Employee, q string) []models.Employee {
	if strings.TrimSpace(q) == "" {
		return emps
	}
	needle := strings.ToLower(q)
	out := make([]models.Employee, 0, len(emps))
	for _, e := range emps {
		for _, field := range []string{e.FirstName, e.LastName, e.EmployeeID, e.Email} {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// ActiveOnly keeps active employees, preserving order.
func ActiveOnly(emps []models.Employee) []models.Employee {
	out := make([]models.Employee, 0, len(emps))
	for _, e := range emps {
		if e.Active {
			out = append(out, e)
		}
	}
	return out
}
