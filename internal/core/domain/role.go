package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is one of the closed set of platform roles.
type Role uint8

const (
	RoleAdmin Role = 1 << iota
	RoleAgent
	RoleClient
)

// authorityPrefix is how the backend spells granted authorities.
const authorityPrefix = "ROLE_"

var roleNames = map[Role]string{
	RoleAdmin:  "ADMIN",
	RoleAgent:  "AGENT",
	RoleClient: "CLIENT",
}

// AllRoles lists every role in precedence order.
var AllRoles = []Role{RoleAdmin, RoleAgent, RoleClient}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// Authority returns the wire form of r, e.g. "ROLE_ADMIN".
func (r Role) Authority() string {
	return authorityPrefix + r.String()
}

// ParseRole accepts both "ADMIN" and "ROLE_ADMIN", case-insensitively.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, authorityPrefix)
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// RoleSet is the capability set granted to a user.
type RoleSet uint8

// NewRoleSet builds a set from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= RoleSet(r)
	}
	return s
}

// ParseRoleSet converts backend authorities into a RoleSet. Authorities that
// are not platform roles grant nothing and are dropped.
func ParseRoleSet(authorities []string) RoleSet {
	var s RoleSet
	for _, a := range authorities {
		if r, err := ParseRole(a); err == nil {
			s |= RoleSet(r)
		}
	}
	return s
}

// Has reports whether r is in the set.
func (s RoleSet) Has(r Role) bool {
	return r != 0 && s&RoleSet(r) == RoleSet(r)
}

// Empty reports whether no role is granted.
func (s RoleSet) Empty() bool { return s == 0 }

// Roles returns the members in precedence order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(AllRoles))
	for _, r := range AllRoles {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Authorities returns the members in wire form.
func (s RoleSet) Authorities() []string {
	roles := s.Roles()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = r.Authority()
	}
	return out
}

func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Authorities())
}

func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var authorities []string
	if err := json.Unmarshal(data, &authorities); err != nil {
		return fmt.Errorf("roles: %w", err)
	}
	*s = ParseRoleSet(authorities)
	return nil
}
