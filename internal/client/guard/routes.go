package guard

import "strings"

// Route is a navigable view.
type Route struct {
	Path         string
	RequiresAuth bool
}

// NewRoute returns a protected route.
func NewRoute(path string) Route {
	return Route{Path: path, RequiresAuth: true}
}

// Public returns a route that renders without a session.
func Public(path string) Route {
	return Route{Path: path}
}

// Route paths known to the client.
const (
	RootPath      = "/"
	SignupPath    = "/signup"
	DashboardPath = "/dashboard"
	AppsPath      = "/apps"
	WebAppsPath   = "/webapps"
	ProfilePath   = "/profile"
	UploadPath    = "/upload"
)

// Routes is the route table.
var Routes = []Route{
	Public(LoginPath),
	Public(SignupPath),
	NewRoute(DashboardPath),
	NewRoute(AppsPath),
	NewRoute(WebAppsPath),
	NewRoute(ProfilePath),
	NewRoute(UploadPath),
}

// Lookup resolves path against the route table. The root path resolves to
// the login route.
func Lookup(path string) (Route, bool) {
	path = normalize(path)
	if path == RootPath {
		path = LoginPath
	}
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = RootPath
		}
	}
	return path
}
