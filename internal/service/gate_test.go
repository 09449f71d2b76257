package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cstdportal/internal/model"
)

func TestAuthorize(t *testing.T) {
	anonymous := model.Session{}
	user := model.Session{Username: "bob", Role: model.RoleUser}
	admin := model.Session{Username: "carol", Role: model.RoleAdmin}

	tests := []struct {
		name    string
		session model.Session
		view    View
		want    Decision
	}{
		{"home is public", anonymous, ViewHome, Allow},
		{"home for user", user, ViewHome, Allow},
		{"home for admin", admin, ViewHome, Allow},
		{"analyze requires login", anonymous, ViewAnalyze, RequiresLogin},
		{"analyze for user", user, ViewAnalyze, Allow},
		{"analyze for admin", admin, ViewAnalyze, Allow},
		{"admin files anonymous", anonymous, ViewAdminFiles, RequiresLogin},
		{"admin files for user", user, ViewAdminFiles, RequiresAdminRole},
		{"admin files for admin", admin, ViewAdminFiles, Allow},
		{"unknown view is public", anonymous, View("bogus"), Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.session, tt.view))
		})
	}
}
