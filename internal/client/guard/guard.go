package guard

import (
	"errors"

	"github.com/dmitrijs2005/campushub/internal/client/session"
)

// LoginPath is where anonymous users are sent.
const LoginPath = "/login"

var ErrNoSessionSource = errors.New("guard: session source is required")

// Decision is what a view should do for the current session status.
type Decision int

const (
	Render Decision = iota
	// RenderPending shows a neutral placeholder while the session loads.
	RenderPending
	RedirectToLogin
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RenderPending:
		return "pending"
	case RedirectToLogin:
		return "redirect"
	}
	return "unknown"
}

// Decide maps a session status to a decision. While the session is loading
// the answer is never a redirect.
func Decide(status session.Status, requiresAuth bool) Decision {
	if !requiresAuth {
		return Render
	}
	switch status {
	case session.StatusAuthenticated:
		return Render
	case session.StatusAnonymous:
		return RedirectToLogin
	}
	return RenderPending
}

// SessionSource provides the current session snapshot.
type SessionSource interface {
	Snapshot() session.Snapshot
}

type Guard struct {
	src SessionSource
}

func NewGuard(src SessionSource) (*Guard, error) {
	if src == nil {
		return nil, ErrNoSessionSource
	}
	return &Guard{src: src}, nil
}

// Check decides for route against the session as it is right now.
func (g *Guard) Check(route Route) Decision {
	return Decide(g.src.Snapshot().Status, route.RequiresAuth)
}
