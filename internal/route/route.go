// Package route maps view paths to pages and decides what a guarded view
// renders for the current auth status.
package route

import (
	"strings"

	"github.com/julianstephens/preptrack/internal/auth"
)

type Path string

const (
	Login        Path = "/login"
	Register     Path = "/register"
	Dashboard    Path = "/dashboard"
	DailyTracker Path = "/daily-tracker"
	MockTracker  Path = "/mock-tracker"
	MockAnalysis Path = "/mock-analysis"
	SoftSkills   Path = "/soft-skills"
	AIMentor     Path = "/ai-mentor"
	Profile      Path = "/profile"
	Settings     Path = "/settings"
)

type Route struct {
	Path      Path
	Title     string
	Protected bool
	// InNav marks the routes listed in the navigation bar
	InNav bool
}

var table = []Route{
	{Path: Login, Title: "Login"},
	{Path: Register, Title: "Register"},
	{Path: Dashboard, Title: "Dashboard", Protected: true, InNav: true},
	{Path: DailyTracker, Title: "Daily", Protected: true, InNav: true},
	{Path: MockTracker, Title: "Mocks", Protected: true, InNav: true},
	{Path: MockAnalysis, Title: "Analysis", Protected: true, InNav: true},
	{Path: SoftSkills, Title: "Soft Skills", Protected: true, InNav: true},
	{Path: AIMentor, Title: "AI Mentor", Protected: true, InNav: true},
	{Path: Profile, Title: "Profile", Protected: true, InNav: true},
	{Path: Settings, Title: "Settings", Protected: true, InNav: true},
}

// Resolve maps any path to a known route; "/" and unknown paths land on the
// dashboard.
func Resolve(p string) Route {
	p = "/" + strings.Trim(strings.TrimSpace(p), "/")
	for _, r := range table {
		if string(r.Path) == p {
			return r
		}
	}
	r, _ := Lookup(Dashboard)
	return r
}

func Lookup(p Path) (Route, bool) {
	for _, r := range table {
		if r.Path == p {
			return r, true
		}
	}
	return Route{}, false
}

// Nav returns the routes shown in the navigation bar, in order
func Nav() []Route {
	var out []Route
	for _, r := range table {
		if r.InNav {
			out = append(out, r)
		}
	}
	return out
}

// ShowNavbar is false on the public sign-in views
func ShowNavbar(p Path) bool {
	return p != Login && p != Register
}

// Decision is what the guard tells the view layer to do
type Decision int

const (
	// Wait renders a loading indicator and makes no routing decision
	Wait Decision = iota
	Render
	RedirectLogin
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Render:
		return "render"
	default:
		return "redirect-login"
	}
}

// Guard decides whether a protected view can render. The redirect discards
// the requested target; after sign-in the user lands on the dashboard.
func Guard(status auth.Status) Decision {
	switch status {
	case auth.StatusLoading:
		return Wait
	case auth.StatusAuthenticated:
		return Render
	default:
		return RedirectLogin
	}
}

// Navigate applies the guard to a requested path and returns where the view
// layer should be, plus whether it must wait.
func Navigate(status auth.Status, requested string) (Path, Decision) {
	r := Resolve(requested)
	if !r.Protected {
		return r.Path, Render
	}
	d := Guard(status)
	if d == RedirectLogin {
		return Login, d
	}
	return r.Path, d
}
