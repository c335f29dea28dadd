// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
//	data := listData{
//	    BaseVM: viewdata.NewBaseVM(w, r, "Employees", "/dashboard"),
//	}
type BaseVM struct {
	// Site settings (from config)
	SiteName   string
	FooterHTML template.HTML

	// Signed-in administrator (from the session cookie)
	IsLoggedIn   bool
	UserName     string
	UserInitials string
	UserRole     string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	CSRFToken string

	// One-shot notices set by the previous request
	Flashes []auth.Flash
}

// Site is the per-deployment branding shown on every page.
type Site struct {
	Name       string
	FooterHTML string
}

var (
	site     = Site{Name: models.DefaultSiteName}
	sessions *auth.SessionManager
)

// Init records site branding and the session manager used to pop flashes.
// Call this once at startup from bootstrap.
func Init(s Site, sm *auth.SessionManager) {
	if s.Name == "" {
		s.Name = models.DefaultSiteName
	}
	s.FooterHTML = htmlsanitize.Sanitize(s.FooterHTML)
	site = s
	sessions = sm
}

// SiteName returns the configured site name.
func SiteName() string {
	return site.Name
}

// NewBaseVM creates a fully populated BaseVM for a page. Flashes are
// consumed, so call it once per rendered page.
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, backDefault string) BaseVM {
	vm := BaseVM{
		SiteName:    site.Name,
		FooterHTML:  template.HTML(site.FooterHTML),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if s, ok := auth.CurrentSession(r); ok {
		vm.IsLoggedIn = true
		vm.UserName = s.User.Name
		if vm.UserName == "" {
			vm.UserName = s.User.EmployeeID
		}
		vm.UserInitials = initials(vm.UserName)
		vm.UserRole = s.User.Role
	}

	if sessions != nil && w != nil {
		vm.Flashes = sessions.Flashes(w, r)
	}
	return vm
}

// initials takes the first letter of the first and last words of name.
func initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	first := []rune(words[0])[:1]
	if len(words) == 1 {
		return strings.ToUpper(string(first))
	}
	last := []rune(words[len(words)-1])[:1]
	return strings.ToUpper(string(first) + string(last))
}
