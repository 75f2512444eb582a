package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-pom/internal/infrastructure/browser/memory"
)

func TestDashboard(t *testing.T) {
	k := newKit()
	p := NewDashboard(k.in, k.cat.Dashboard)
	ctx := context.Background()

	assert.False(t, p.IsLoaded(ctx))

	k.d.Set(k.cat.Dashboard.WelcomeMessage, &memory.Element{Tag: "h1", Text: "Welcome back, Admin"})
	k.d.Set(k.cat.Dashboard.LogoutButton, &memory.Element{Tag: "button"})
	k.d.Set(k.cat.Dashboard.UserProfile, &memory.Element{Tag: "div"})

	assert.True(t, p.IsLoaded(ctx))
	assert.Equal(t, "Welcome back, Admin", p.WelcomeMessage(ctx))
	require.NoError(t, p.OpenProfile(ctx))
	require.NoError(t, p.Logout(ctx))
	assert.Len(t, k.d.ActionsOf("click"), 2)
}

func TestDashboard_HasNewNotifications(t *testing.T) {
	tests := []struct {
		name string
		bell *memory.Element
		want bool
	}{
		{"missing", nil, false},
		{"plain", &memory.Element{Tag: "span"}, false},
		{"badge class", &memory.Element{Tag: "span", Classes: []string{"has-notification"}}, true},
		{"zero count", &memory.Element{Tag: "span", Attributes: map[string]string{"data-count": "0"}}, false},
		{"count", &memory.Element{Tag: "span", Attributes: map[string]string{"data-count": "3"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := newKit()
			if tt.bell != nil {
				k.d.Set(k.cat.Dashboard.NotificationIcon, tt.bell)
			}
			assert.Equal(t, tt.want, NewDashboard(k.in, k.cat.Dashboard).HasNewNotifications(context.Background()))
		})
	}
}
