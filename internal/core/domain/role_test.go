package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"ADMIN", RoleAdmin},
		{"ROLE_ADMIN", RoleAdmin},
		{"role_agent", RoleAgent},
		{" CLIENT ", RoleClient},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRole(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseRole("ROLE_SUPERUSER")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRoleSet(t *testing.T) {
	s := ParseRoleSet([]string{"ROLE_CLIENT", "ROLE_AUDITOR", "ROLE_ADMIN"})

	assert.True(t, s.Has(RoleAdmin))
	assert.True(t, s.Has(RoleClient))
	assert.False(t, s.Has(RoleAgent))
	assert.False(t, s.Has(0))
	assert.Equal(t, []Role{RoleAdmin, RoleClient}, s.Roles())
	assert.True(t, RoleSet(0).Empty())
}

func TestRoleSetJSON(t *testing.T) {
	b, err := json.Marshal(NewRoleSet(RoleClient, RoleAgent))
	require.NoError(t, err)
	assert.JSONEq(t, `["ROLE_AGENT","ROLE_CLIENT"]`, string(b))

	var s RoleSet
	require.NoError(t, json.Unmarshal([]byte(`["ROLE_AGENT"]`), &s))
	assert.Equal(t, NewRoleSet(RoleAgent), s)

	assert.Error(t, json.Unmarshal([]byte(`"ROLE_AGENT"`), &s))
}

func TestDecodeUser(t *testing.T) {
	u, err := DecodeUser(`{"username":"amina","email":"amina@bank.ma","roles":["ROLE_CLIENT"]}`)
	require.NoError(t, err)
	assert.Equal(t, "amina", u.Username)
	assert.True(t, u.HasRole(RoleClient))

	_, err = DecodeUser(`{not json`)
	assert.ErrorIs(t, err, ErrCorruptSession)

	_, err = DecodeUser(`{"email":"x@y.z"}`)
	assert.ErrorIs(t, err, ErrCorruptSession)
}

func TestLoginResponseUser(t *testing.T) {
	resp := LoginResponse{
		Token:    "abc",
		Username: "youssef",
		Email:    "youssef@bank.ma",
		Roles:    []string{"ROLE_AGENT"},
	}
	u := resp.User()
	assert.Equal(t, "youssef", u.Username)
	assert.Equal(t, "youssef@bank.ma", u.Email)
	assert.Equal(t, []string{"ROLE_AGENT"}, u.Roles.Authorities())
}

func TestSessionAuthenticated(t *testing.T) {
	u := &User{Username: "a", Roles: NewRoleSet(RoleAdmin)}

	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{User: u}.Authenticated())
	assert.False(t, Session{Token: "t"}.Authenticated())
	assert.True(t, Session{User: u, Token: "t"}.Authenticated())
	assert.True(t, Session{User: u, Token: "t"}.HasRole(RoleAdmin))
	assert.False(t, Session{User: u}.HasRole(RoleAdmin))
}
