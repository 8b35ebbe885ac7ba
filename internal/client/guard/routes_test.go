package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		path      string
		wantPath  string
		protected bool
		found     bool
	}{
		{"/login", "/login", false, true},
		{"/signup", "/signup", false, true},
		{"/", "/login", false, true},
		{"", "/login", false, true},
		{"dashboard", "/dashboard", true, true},
		{"/apps/", "/apps", true, true},
		{" /webapps ", "/webapps", true, true},
		{"/profile", "/profile", true, true},
		{"/upload", "/upload", true, true},
		{"/nope", "", false, false},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r, ok := Lookup(tc.path)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.wantPath, r.Path)
			assert.Equal(t, tc.protected, r.RequiresAuth)
		})
	}
}

func TestRouteConstructors(t *testing.T) {
	assert.True(t, NewRoute("/x").RequiresAuth)
	assert.False(t, Public("/x").RequiresAuth)
}
