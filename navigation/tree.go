// Package navigation maps a role to the menus the console shows it: the main
// sidebar, the sidebar footer and the mobile bottom bar.
package navigation

import "strings"

// MenuPath is the path of items that open the menu instead of navigating.
const MenuPath = "#"

// MaxMobileItems is the most entries a mobile bottom bar holds.
const MaxMobileItems = 5

// Icon names a glyph; rendering is up to the client.
type Icon string

const (
	IconLayoutDashboard Icon = "LayoutDashboard"
	IconUsers           Icon = "Users"
	IconCreditCard      Icon = "CreditCard"
	IconUser            Icon = "User"
	IconHelpCircle      Icon = "HelpCircle"
	IconHome            Icon = "Home"
	IconPlus            Icon = "Plus"
	IconMenu            Icon = "Menu"
	IconFileText        Icon = "FileText"
	IconDownload        Icon = "Download"
	IconTrendingUp      Icon = "TrendingUp"
	IconBuilding2       Icon = "Building2"
)

type BadgeVariant string

const (
	BadgeInfo    BadgeVariant = "info"
	BadgeWarning BadgeVariant = "warning"
	BadgeDanger  BadgeVariant = "danger"
	BadgeSuccess BadgeVariant = "success"
)

type Badge struct {
	Count   int          `json:"count" yaml:"count"`
	Variant BadgeVariant `json:"variant" yaml:"variant"`
}

type SubItem struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	Label     string `json:"label" yaml:"label"`
	Path      string `json:"path" yaml:"path"`
	Disabled  bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Highlight bool   `json:"highlight,omitempty" yaml:"highlight,omitempty"`
}

type Item struct {
	ID        string    `json:"id" yaml:"id"`
	Label     string    `json:"label" yaml:"label"`
	Icon      Icon      `json:"icon" yaml:"icon"`
	Path      string    `json:"path" yaml:"path"`
	Badge     *Badge    `json:"badge,omitempty" yaml:"badge,omitempty"`
	Submenu   []SubItem `json:"submenu,omitempty" yaml:"submenu,omitempty"`
	Disabled  bool      `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Highlight bool      `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	Primary   bool      `json:"primary,omitempty" yaml:"primary,omitempty"` // Centre action of the mobile bar
}

// Tree is everything one role can navigate to. Slices are never nil.
type Tree struct {
	Main   []Item `json:"main" yaml:"main"`
	Bottom []Item `json:"bottom" yaml:"bottom"`
	Mobile []Item `json:"mobile" yaml:"mobile"`
}

// IsMenu reports whether the item opens the menu rather than navigating.
func (i Item) IsMenu() bool {
	return i.Path == MenuPath
}

// Matches reports whether current is itemPath or lies beneath it.
func Matches(itemPath, current string) bool {
	if itemPath == MenuPath {
		return false
	}
	return current == itemPath || strings.HasPrefix(current, itemPath+"/")
}

// SubmenuActive reports whether current matches any submenu entry.
func (i Item) SubmenuActive(current string) bool {
	for _, s := range i.Submenu {
		if Matches(s.Path, current) {
			return true
		}
	}
	return false
}

// Active returns the id of the first main or bottom item that current
// matches directly or through its submenu, or "".
func (t Tree) Active(current string) string {
	for _, list := range [][]Item{t.Main, t.Bottom} {
		for _, item := range list {
			if Matches(item.Path, current) || item.SubmenuActive(current) {
				return item.ID
			}
		}
	}
	return ""
}
