// Package attendancestore reads and edits attendance records and the office
// geofence through the attendance API.
package attendancestore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dalemusser/attendhub/internal/app/system/apiclient"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

// Store wraps the /attendance endpoints.
type Store struct {
	api *apiclient.Client
}

// New returns an attendance store backed by api.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

func recordPath(id int64) string {
	return fmt.Sprintf("/attendance/%d", id)
}

// Query encodes f, leaving zero fields out.
func Query(f models.AttendanceFilter) url.Values {
	q := url.Values{}
	if f.EmployeeID != "" {
		q.Set("employeeId", f.EmployeeID)
	}
	if f.StartDate != 0 {
		q.Set("startDate", strconv.FormatInt(f.StartDate, 10))
	}
	if f.EndDate != 0 {
		q.Set("endDate", strconv.FormatInt(f.EndDate, 10))
	}
	return q
}

// List returns the records matching f exactly as the API filters them.
func (s *Store) List(ctx context.Context, sess *models.Session, f models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	var out models.AttendanceList
	if err := s.api.Get(ctx, sess, "/attendance", Query(f), &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

// CreateManual records an attendance entry typed in by an administrator.
func (s *Store) CreateManual(ctx context.Context, sess *models.Session, in models.ManualAttendanceCreate) (models.AttendanceRecord, error) {
	var out models.AttendanceRecord
	if err := s.api.Post(ctx, sess, "/attendance/manual", in, &out); err != nil {
		return models.AttendanceRecord{}, err
	}
	return out, nil
}

// Update applies in to record id.
func (s *Store) Update(ctx context.Context, sess *models.Session, id int64, in models.AttendanceUpdate) (models.AttendanceRecord, error) {
	var out models.AttendanceRecord
	if err := s.api.Put(ctx, sess, recordPath(id), in, &out); err != nil {
		return models.AttendanceRecord{}, err
	}
	return out, nil
}

// Delete removes record id.
func (s *Store) Delete(ctx context.Context, sess *models.Session, id int64) error {
	return s.api.Delete(ctx, sess, recordPath(id), nil)
}

// Get finds record id. The API has no single-record read, so the record is
// looked up in the list for f.
func (s *Store) Get(ctx context.Context, sess *models.Session, id int64, f models.AttendanceFilter) (models.AttendanceRecord, bool, error) {
	recs, err := s.List(ctx, sess, f)
	if err != nil {
		return models.AttendanceRecord{}, false, err
	}
	for _, r := range recs {
		if r.ID == id {
			return r, true, nil
		}
	}
	return models.AttendanceRecord{}, false, nil
}

// GPSConfig returns the office geofence. A server with no configuration yet
// yields the defaults.
func (s *Store) GPSConfig(ctx context.Context, sess *models.Session) (models.GPSConfig, error) {
	var out models.GPSConfig
	if err := s.api.Get(ctx, sess, "/attendance/gps-config", nil, &out); err != nil {
		if apiclient.IsNotFound(err) {
			return models.DefaultGPSConfig(), nil
		}
		return models.GPSConfig{}, err
	}
	return out, nil
}

// UpdateGPSConfig replaces the office geofence.
func (s *Store) UpdateGPSConfig(ctx context.Context, sess *models.Session, in models.GPSConfig) (models.GPSConfig, error) {
	var out models.GPSConfig
	if err := s.api.Put(ctx, sess, "/attendance/gps-config", in, &out); err != nil {
		return models.GPSConfig{}, err
	}
	return out, nil
}
