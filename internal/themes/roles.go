// SPDX-License-Identifier: MIT
package themes

// RoleGroup classifies a semantic color role
type RoleGroup int

const (
	// GroupCore covers the surface, text and state roles every encoding defines
	GroupCore RoleGroup = iota
	// GroupChart covers chart-1 through chart-5
	GroupChart
	// GroupSidebar covers the sidebar roles only newer palettes define
	GroupSidebar
)

// Role is a semantic CSS variable name such as "primary" or "border"
type Role struct {
	Name  string
	Group RoleGroup
}

// Var returns the CSS custom property name, e.g. "--primary"
func (r Role) Var() string {
	return "--" + r.Name
}

// Roles is the canonical ordered role list. Every emitter walks it instead of
// keeping its own copy.
var Roles = []Role{
	{"background", GroupCore},
	{"foreground", GroupCore},
	{"card", GroupCore},
	{"card-foreground", GroupCore},
	{"popover", GroupCore},
	{"popover-foreground", GroupCore},
	{"primary", GroupCore},
	{"primary-foreground", GroupCore},
	{"secondary", GroupCore},
	{"secondary-foreground", GroupCore},
	{"muted", GroupCore},
	{"muted-foreground", GroupCore},
	{"accent", GroupCore},
	{"accent-foreground", GroupCore},
	{"destructive", GroupCore},
	{"destructive-foreground", GroupCore},
	{"border", GroupCore},
	{"input", GroupCore},
	{"ring", GroupCore},
	{"chart-1", GroupChart},
	{"chart-2", GroupChart},
	{"chart-3", GroupChart},
	{"chart-4", GroupChart},
	{"chart-5", GroupChart},
	{"sidebar", GroupSidebar},
	{"sidebar-foreground", GroupSidebar},
	{"sidebar-primary", GroupSidebar},
	{"sidebar-primary-foreground", GroupSidebar},
	{"sidebar-accent", GroupSidebar},
	{"sidebar-accent-foreground", GroupSidebar},
	{"sidebar-border", GroupSidebar},
	{"sidebar-ring", GroupSidebar},
}

// RolesIn returns the roles belonging to any of the given groups, in
// canonical order
func RolesIn(groups ...RoleGroup) []Role {
	var out []Role
	for _, r := range Roles {
		for _, g := range groups {
			if r.Group == g {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
