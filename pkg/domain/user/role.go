package user

import (
	"encoding/json"
	"slices"
	"strings"
)

// Role is an authorization role carried by users and tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Roles is the canonical role set. Call sites that only know a single role
// must go through ParseRoles so every comparison happens on a set.
type Roles []Role

// NewRoles builds a normalized set from the given roles, dropping blanks and
// duplicates.
func NewRoles(roles ...Role) Roles {
	out := make(Roles, 0, len(roles))
	for _, r := range roles {
		r = Role(strings.ToLower(strings.TrimSpace(string(r))))
		if r == "" || slices.Contains(out, r) {
			continue
		}
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// ParseRoles normalizes the shapes roles arrive in: a single role string, a
// comma separated list, a []string, a []any decoded from JSON, or a Roles
// value. ok is false when v is not a recognizable role representation.
func ParseRoles(v any) (roles Roles, ok bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case Role:
		return NewRoles(t), true
	case string:
		parts := strings.Split(t, ",")
		rs := make([]Role, 0, len(parts))
		for _, p := range parts {
			rs = append(rs, Role(p))
		}
		return NewRoles(rs...), true
	case Roles:
		return NewRoles(t...), true
	case []Role:
		return NewRoles(t...), true
	case []string:
		rs := make([]Role, 0, len(t))
		for _, s := range t {
			rs = append(rs, Role(s))
		}
		return NewRoles(rs...), true
	case []any:
		rs := make([]Role, 0, len(t))
		for _, item := range t {
			s, isString := item.(string)
			if !isString {
				return nil, false
			}
			rs = append(rs, Role(s))
		}
		return NewRoles(rs...), true
	default:
		return nil, false
	}
}

// Has reports whether the set contains r.
func (rs Roles) Has(r Role) bool {
	return slices.Contains(rs, r)
}

// Intersects reports whether the two sets share at least one role.
func (rs Roles) Intersects(other Roles) bool {
	for _, r := range other {
		if rs.Has(r) {
			return true
		}
	}
	return false
}

// Strings returns the roles as plain strings.
func (rs Roles) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

func (rs Roles) String() string {
	return strings.Join(rs.Strings(), ", ")
}

// UnmarshalJSON accepts both `"admin"` and `["admin","user"]`.
func (rs *Roles) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, ok := ParseRoles(raw)
	if !ok {
		*rs = nil
		return nil
	}
	*rs = parsed
	return nil
}
