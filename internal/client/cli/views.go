package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/dmitrijs2005/campushub/internal/client/guard"
	"github.com/dmitrijs2005/campushub/internal/client/session"
	"github.com/dmitrijs2005/campushub/internal/common"
)

var ErrNotFound = errors.New("page not found")

// Open navigates to path. Protected views are checked by the route guard:
// while the session loads a placeholder is shown and the current path is
// kept; anonymous users are moved to the login screen.
func (a *App) Open(ctx context.Context, path string) error {
	route, ok := guard.Lookup(path)
	if !ok {
		pterm.Error.Printfln("Page not found: %s", path)
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	switch a.guard.Check(route) {
	case guard.RenderPending:
		printlnFn("Loading…")
		return nil

	case guard.RedirectToLogin:
		pterm.Info.Println("Please sign in to continue")
		route, _ = guard.Lookup(guard.LoginPath)
	}

	s := a.session.Snapshot()
	if route.RequiresAuth && !s.IsAuthenticated() {
		printlnFn("Loading…")
		return nil
	}

	a.path = route.Path
	a.render(route.Path, s)
	return nil
}

func (a *App) render(path string, s session.Snapshot) {
	switch path {
	case guard.LoginPath:
		pterm.DefaultSection.Println("Sign in")
		if s.IsAuthenticated() {
			printlnFn(fmt.Sprintf("Signed in as %s. Type 'dashboard' to continue or 'login' to switch account.", s.User.UserID))
			return
		}
		printlnFn("Type 'login' to sign in or 'signup' to create an account.")

	case guard.SignupPath:
		pterm.DefaultSection.Println("Create account")
		printlnFn("Type 'signup' to start.")

	case guard.DashboardPath:
		printlnFn(fmt.Sprintf("Welcome, %s!", s.User.DisplayName()))
		printlnFn(common.AppTagline)
		printlnFn("Browse: apps, webapps, upload, profile")

	case guard.AppsPath:
		pterm.DefaultSection.Println("Mobile apps")
		printlnFn("No apps published for " + s.User.CollegeName + " yet.")

	case guard.WebAppsPath:
		pterm.DefaultSection.Println("Web apps")
		printlnFn("No web apps published for " + s.User.CollegeName + " yet.")

	case guard.UploadPath:
		pterm.DefaultSection.Println("Upload")
		printlnFn("Uploading is not available in this client.")

	case guard.ProfilePath:
		pterm.DefaultSection.Println("Profile")
		printProfile(s)
	}
}

func printProfile(s session.Snapshot) {
	u := s.User
	printlnFn("User ID:       " + u.UserID)
	printlnFn("College name:  " + u.CollegeName)
	printlnFn("College code:  " + u.CollegeCode)
	printlnFn("Full name:     " + orDash(u.FullName))
	printlnFn("Date of birth: " + orDash(dobDate(u.DOB)))
	printlnFn("Place:         " + orDash(u.Place))
}
