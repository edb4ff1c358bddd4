package session

import "strings"

// Affordance is a navigation element whose visibility is derived, never
// rendered unconditionally.
type Affordance string

const (
	AffordanceHome    Affordance = "home"
	AffordanceAbout   Affordance = "about"
	AffordanceProfile Affordance = "profile"
	AffordanceSignIn  Affordance = "sign-in"
	AffordanceLogout  Affordance = "logout"
)

// AdminDashboardRoute is the only route that shows the Logout button. The
// rule is route-keyed on purpose: an unauthenticated viewer landing here
// still sees Logout. Preserved as-is from the original shell.
const AdminDashboardRoute = "/admin-dashboard"

// bareNavRoutes hide the regular navigation links regardless of session
// state: landing, auth, and admin-management screens.
var bareNavRoutes = map[string]struct{}{
	"/":                {},
	"/login":           {},
	"/sign-up":         {},
	"/admin-login":     {},
	"/admin-dashboard": {},
	"/admin/add-user":  {},
}

func navHidden(route string) bool {
	if _, ok := bareNavRoutes[route]; ok {
		return true
	}
	return strings.HasPrefix(route, "/admin/edit-user")
}

// VisibleAffordances derives the visible navigation elements from session
// presence and the active route. Pure: no side effects, no network.
func VisibleAffordances(signedIn bool, route string) []Affordance {
	var out []Affordance

	if !navHidden(route) {
		out = append(out, AffordanceHome, AffordanceAbout)
		if signedIn {
			out = append(out, AffordanceProfile)
		} else {
			out = append(out, AffordanceSignIn)
		}
	}

	if route == AdminDashboardRoute {
		out = append(out, AffordanceLogout)
	}

	return out
}

// Visible reports whether a single affordance would be rendered.
func Visible(a Affordance, signedIn bool, route string) bool {
	for _, v := range VisibleAffordances(signedIn, route) {
		if v == a {
			return true
		}
	}
	return false
}
