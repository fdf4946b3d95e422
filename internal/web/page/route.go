// Package page renders full HTML pages inside the application shell.
package page

import "strings"

// Route is one of the four user-facing pages. The set is closed.
type Route int

const (
	RouteHome Route = iota
	RouteForm
	RouteRecommendations
	RouteAdmin
)

// Routes lists the pages in navigation order.
var Routes = []Route{RouteHome, RouteForm, RouteRecommendations, RouteAdmin}

var routeNames = map[Route]string{
	RouteHome:            "home",
	RouteForm:            "form",
	RouteRecommendations: "recommendations",
	RouteAdmin:           "admin",
}

var routePaths = map[Route]string{
	RouteHome:            "/",
	RouteForm:            "/form",
	RouteRecommendations: "/recommendations",
	RouteAdmin:           "/admin",
}

// Name is the template and metrics label.
func (r Route) Name() string {
	return routeNames[r]
}

func (r Route) Path() string {
	return routePaths[r]
}

// NavKey is the catalog key of the navigation label.
func (r Route) NavKey() string {
	return "nav." + r.Name()
}

// RouteForPath maps a request path to its page. Sub-paths belong to their page.
func RouteForPath(path string) (Route, bool) {
	if path == "/" {
		return RouteHome, true
	}
	for _, r := range Routes[1:] {
		p := r.Path()
		if path == p || strings.HasPrefix(path, p+"/") {
			return r, true
		}
	}
	return 0, false
}
