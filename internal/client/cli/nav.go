package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/umsclient/internal/client/session"
)

// Navigate changes the simulated current route. Routes are free-form paths;
// the session gate decides what each one shows.
func (a *App) Navigate(route string) error {
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	a.route = route
	return a.ShowNav()
}

// ShowNav renders the navigation affordances visible on the current route
// for the current session state.
func (a *App) ShowNav() error {
	visible := session.VisibleAffordances(a.isSignedIn(), a.route)
	if len(visible) == 0 {
		printlnFn("(no navigation links here)")
		return nil
	}

	names := make([]string, 0, len(visible))
	for _, v := range visible {
		names = append(names, string(v))
	}
	printlnFn(fmt.Sprintf("Links: %s", strings.Join(names, ", ")))
	return nil
}
