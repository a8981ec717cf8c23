package rbac

import (
	"slices"
	"strings"
)

// Checker answers permission questions against a role policy. Grants may be
// exact ("bank:view"), a prefix wildcard ("bank:*") or "*".
type Checker struct {
	policy map[string][]string
}

// NewChecker uses RolePermissions when policy is nil.
func NewChecker(policy map[string][]string) *Checker {
	if policy == nil {
		policy = RolePermissions
	}
	return &Checker{policy: policy}
}

func (c *Checker) Has(role, perm string) bool {
	for _, grant := range c.policy[role] {
		if grants(grant, perm) {
			return true
		}
	}
	return false
}

func (c *Checker) Any(role string, perms ...string) bool {
	return slices.ContainsFunc(perms, func(p string) bool { return c.Has(role, p) })
}

func (c *Checker) All(role string, perms ...string) bool {
	return !slices.ContainsFunc(perms, func(p string) bool { return !c.Has(role, p) })
}

// Permissions lists the grants of role, sorted. Unknown roles get none.
func (c *Checker) Permissions(role string) []string {
	out := slices.Clone(c.policy[role])
	slices.Sort(out)
	return out
}

// Permissions reports the default policy's grants for role.
func Permissions(role string) []string { return defaultChecker.Permissions(role) }

func grants(grant, perm string) bool {
	if grant == "*" || grant == perm {
		return true
	}
	prefix, ok := strings.CutSuffix(grant, "*")
	return ok && strings.HasPrefix(perm, prefix)
}
