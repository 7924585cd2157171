package user_test

import (
	"encoding/json"
	"testing"

	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoles(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		input  any
		want   user.Roles
		wantOK bool
	}{
		{"single string", "admin", user.Roles{user.RoleAdmin}, true},
		{"comma list", "user, admin", user.Roles{user.RoleAdmin, user.RoleUser}, true},
		{"string slice", []string{"user", "admin", "user"}, user.Roles{user.RoleAdmin, user.RoleUser}, true},
		{"json array", []any{"ADMIN"}, user.Roles{user.RoleAdmin}, true},
		{"role value", user.RoleUser, user.Roles{user.RoleUser}, true},
		{"mixed json array", []any{"admin", 1}, nil, false},
		{"number", 42, nil, false},
		{"nil", nil, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := user.ParseRoles(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestRoles_UnmarshalJSON(t *testing.T) {
	t.Parallel()
	var claims struct {
		Roles user.Roles `json:"roles"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"roles":"admin"}`), &claims))
	assert.Equal(t, user.Roles{user.RoleAdmin}, claims.Roles)

	require.NoError(t, json.Unmarshal([]byte(`{"roles":["user","admin"]}`), &claims))
	assert.Equal(t, user.Roles{user.RoleAdmin, user.RoleUser}, claims.Roles)

	require.NoError(t, json.Unmarshal([]byte(`{"roles":{"a":1}}`), &claims))
	assert.Empty(t, claims.Roles)
}

func TestRoles_Intersects(t *testing.T) {
	t.Parallel()
	admin := user.NewRoles(user.RoleAdmin)
	assert.True(t, user.NewRoles(user.RoleAdmin, user.RoleUser).Intersects(admin))
	assert.False(t, user.NewRoles(user.RoleUser).Intersects(admin))
	assert.False(t, user.Roles{}.Intersects(admin))
	assert.Equal(t, "admin, user", user.NewRoles(user.RoleUser, user.RoleAdmin).String())
}

func TestIdentity_CanAccess(t *testing.T) {
	t.Parallel()
	owner := uuid.New()
	self := &user.Identity{ID: owner, Roles: user.NewRoles(user.RoleUser)}
	other := &user.Identity{ID: uuid.New(), Roles: user.NewRoles(user.RoleUser)}
	admin := &user.Identity{ID: uuid.New(), Roles: user.NewRoles(user.RoleAdmin)}

	assert.True(t, self.CanAccess(owner))
	assert.False(t, other.CanAccess(owner))
	assert.True(t, admin.CanAccess(owner))

	var none *user.Identity
	assert.False(t, none.CanAccess(owner))
	assert.False(t, none.IsAdmin())
}

func TestNewUser(t *testing.T) {
	t.Parallel()
	u, err := user.New("Ada", "Lovelace", " Ada@Example.com ", "s3cret-pass", "")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, user.RoleUser, u.Role)
	assert.Equal(t, user.StatusActive, u.Status)
	assert.NotEqual(t, "s3cret-pass", u.Password)
	assert.True(t, u.CanLogin())
	assert.Equal(t, user.Roles{user.RoleUser}, u.Identity().Roles)

	_, err = user.New("", "", "not-an-email", "pw", "")
	assert.Error(t, err)

	_, err = user.New("", "", "a@b.co", "pw", "root")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}
