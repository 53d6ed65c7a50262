package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
)

func TestPageContextCopiesNav(t *testing.T) {
	a := NewPageContext("A").WithActivePath("/books")
	b := NewPageContext("B")

	// Marking A's active entry must not bleed into B or the template.
	for _, item := range b.Nav {
		assert.False(t, item.Active, "nav item %q marked active on a fresh context", item.Label)
	}
	for _, item := range navItems {
		assert.False(t, item.Active, "shared nav template was mutated")
	}

	var found bool
	for _, item := range a.Nav {
		if item.Path == "/books" {
			assert.True(t, item.Active)
			found = true
		}
	}
	require.True(t, found)
}

func TestPageContextAnonymousHidesAuthNav(t *testing.T) {
	p := NewPageContext("Home").WithActor(domain.AnonymousActor())

	assert.False(t, p.Authenticated)
	for _, item := range p.Nav {
		assert.False(t, item.AuthOnly, "auth-only entry %q shown to anonymous viewer", item.Label)
	}
}

func TestPageContextWithActor(t *testing.T) {
	user := &domain.User{Username: "alice", IsStaff: true}
	p := NewPageContext("Home").WithActor(domain.ActorFor(user))

	assert.True(t, p.Authenticated)
	assert.Equal(t, "alice", p.Username)
	assert.True(t, p.IsStaff)
	assert.Len(t, p.Nav, len(navItems))
}

func TestPageContextChainingIsValueSemantics(t *testing.T) {
	base := NewPageContext("Base")
	derived := base.WithActivePath("/")

	for _, item := range base.Nav {
		assert.False(t, item.Active, "base context mutated by derived copy")
	}

	var marked bool
	for _, item := range derived.Nav {
		marked = marked || item.Active
	}
	assert.True(t, marked)
}
