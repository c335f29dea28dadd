// Package identitystore exchanges credentials for a session token and reads
// the signed-in administrator's live profile.
package identitystore

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalemusser/attendhub/internal/app/system/apiclient"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

// Store wraps the /auth endpoints.
type Store struct {
	api *apiclient.Client
}

// New returns an identity store backed by api.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

// Login posts the credentials to /auth/login. It persists nothing; the
// caller hands the result to SessionManager.Establish.
func (s *Store) Login(ctx context.Context, employeeID, password string) (models.AuthData, error) {
	var out models.AuthData
	in := models.LoginRequest{EmployeeID: strings.TrimSpace(employeeID), Password: password}
	if err := s.api.Post(ctx, nil, "/auth/login", in, &out); err != nil {
		return models.AuthData{}, err
	}
	if out.Token == "" {
		return models.AuthData{}, fmt.Errorf("login: response carried no token")
	}
	return out, nil
}

// CurrentUser fetches the live profile for sess.
func (s *Store) CurrentUser(ctx context.Context, sess *models.Session) (models.UserInfo, error) {
	var out models.UserInfo
	if err := s.api.Get(ctx, sess, "/auth/user", nil, &out); err != nil {
		return models.UserInfo{}, err
	}
	return out, nil
}
