// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/attendhub/internal/app/system/apiclient"
)

// DBDeps holds the back-end dependencies for the app. AttendHub keeps no
// database of its own; its only back end is the attendance API.
type DBDeps struct {
	API *apiclient.Client
}
