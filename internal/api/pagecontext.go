package api

import "github.com/favouritebooks/favouritebooks-server/internal/domain"

// NavItem is a single navigation link.
type NavItem struct {
	Label    string `json:"label"`
	Path     string `json:"path"`
	AuthOnly bool   `json:"auth_only,omitempty"`
	Active   bool   `json:"active,omitempty"`
}

// navItems is the site navigation. It is never mutated; PageContext copies
// it per response so handlers can mark the active entry safely under
// concurrent requests.
var navItems = []NavItem{
	{Label: "Home", Path: "/"},
	{Label: "Books", Path: "/books"},
	{Label: "My Books", Path: "/mybooks", AuthOnly: true},
	{Label: "Add Book", Path: "/addbook", AuthOnly: true},
	{Label: "Genres", Path: "/genres"},
}

// PageContext carries the data every page response shares: title,
// navigation and the viewer's identity. It is a value type built by
// chaining WithX methods; each call returns a new copy, so contexts are
// safe to build concurrently and no request can leak state into another.
type PageContext struct {
	Title         string    `json:"title"`
	Nav           []NavItem `json:"nav"`
	Authenticated bool      `json:"authenticated"`
	Username      string    `json:"username,omitempty"`
	IsStaff       bool      `json:"is_staff,omitempty"`
}

// NewPageContext builds a context with a fresh copy of the navigation.
func NewPageContext(title string) PageContext {
	nav := make([]NavItem, len(navItems))
	copy(nav, navItems)
	return PageContext{Title: title, Nav: nav}
}

// WithActor fills in the viewer's identity and strips auth-only nav
// entries for anonymous viewers.
func (p PageContext) WithActor(actor domain.Actor) PageContext {
	p.Authenticated = actor.IsAuthenticated()
	if actor.IsAuthenticated() {
		p.Username = actor.User.Username
		p.IsStaff = actor.User.IsStaff
		return p
	}

	visible := make([]NavItem, 0, len(p.Nav))
	for _, item := range p.Nav {
		if !item.AuthOnly {
			visible = append(visible, item)
		}
	}
	p.Nav = visible
	return p
}

// WithActivePath marks the nav entry matching path as active. The nav
// slice is re-copied so the shared template is never written to.
func (p PageContext) WithActivePath(path string) PageContext {
	nav := make([]NavItem, len(p.Nav))
	copy(nav, p.Nav)
	for i := range nav {
		nav[i].Active = nav[i].Path == path
	}
	p.Nav = nav
	return p
}
