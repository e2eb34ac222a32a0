package domain

// NavEntry is one navigable screen. An entry with no roles is visible to everyone.
type NavEntry struct {
	Label  string `yaml:"label" json:"label"`
	Target string `yaml:"target" json:"target"`
	Roles  []Role `yaml:"roles,omitempty" json:"roles,omitempty"`
}

// Unrestricted reports whether the entry declares no role restriction.
func (e NavEntry) Unrestricted() bool {
	return len(e.Roles) == 0
}

// VisibleTo reports whether role may see the entry. Absent roles only see unrestricted entries.
func (e NavEntry) VisibleTo(role *Role) bool {
	return e.Unrestricted() || HasRole(role, e.Roles...)
}

// NavGroup is an ordered, titled set of entries.
type NavGroup struct {
	Title   string     `yaml:"title" json:"title"`
	Entries []NavEntry `yaml:"entries" json:"entries"`
}

// Menu is the ordered navigation tree.
type Menu struct {
	Groups []NavGroup `yaml:"groups" json:"groups"`
}

// FilterMenu returns the entries of menu visible to role, preserving order.
// Groups with no visible entries are dropped. It governs visibility only; handlers
// still enforce roles on every privileged read and write.
func FilterMenu(menu Menu, role *Role) Menu {
	filtered := Menu{Groups: make([]NavGroup, 0, len(menu.Groups))}
	for _, group := range menu.Groups {
		entries := make([]NavEntry, 0, len(group.Entries))
		for _, entry := range group.Entries {
			if entry.VisibleTo(role) {
				entries = append(entries, entry)
			}
		}
		if len(entries) == 0 {
			continue
		}
		filtered.Groups = append(filtered.Groups, NavGroup{Title: group.Title, Entries: entries})
	}
	return filtered
}

// Labels flattens the menu into entry labels, in order.
func (m Menu) Labels() []string {
	var labels []string
	for _, group := range m.Groups {
		for _, entry := range group.Entries {
			labels = append(labels, entry.Label)
		}
	}
	return labels
}
