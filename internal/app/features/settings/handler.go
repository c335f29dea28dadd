// internal/app/features/settings/handler.go
package settings

import (
	"time"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	attendancestore "github.com/dalemusser/attendhub/internal/app/store/attendance"
	identitystore "github.com/dalemusser/attendhub/internal/app/store/identity"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// DefaultMapsURL is the map search page the "View on Maps" link opens.
const DefaultMapsURL = "https://maps.google.com/maps"

// Handler serves the settings page: the office geofence and the signed-in
// administrator's live profile.
type Handler struct {
	Attendance *attendancestore.Store
	Identity   *identitystore.Store
	MapsURL    string
	Loc        *time.Location
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(att *attendancestore.Store, identity *identitystore.Store, mapsURL string, loc *time.Location, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if mapsURL == "" {
		mapsURL = DefaultMapsURL
	}
	return &Handler{
		Attendance: att,
		Identity:   identity,
		MapsURL:    mapsURL,
		Loc:        loc,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}
