package navigation

import (
	"context"

	"github.com/jrsteele09/safisaude-console/kvstore"
)

// SidebarCollapsedKey holds the collapsed flag as a JSON boolean.
const SidebarCollapsedKey = kvstore.DefaultPrefix + "sidebar_collapsed"

// Preferences persists per-console navigation settings.
type Preferences struct {
	store kvstore.Store
}

func NewPreferences(store kvstore.Store) *Preferences {
	return &Preferences{store: store}
}

// Collapsed reports the saved sidebar state. Missing or unreadable values
// mean expanded.
func (p *Preferences) Collapsed(ctx context.Context) (bool, error) {
	var collapsed bool
	if _, err := kvstore.GetJSON(ctx, p.store, SidebarCollapsedKey, &collapsed); err != nil {
		return false, err
	}
	return collapsed, nil
}

func (p *Preferences) SetCollapsed(ctx context.Context, collapsed bool) error {
	return kvstore.SetJSON(ctx, p.store, SidebarCollapsedKey, collapsed)
}

// Toggle flips and saves the sidebar state, returning the new value.
func (p *Preferences) Toggle(ctx context.Context) (bool, error) {
	collapsed, err := p.Collapsed(ctx)
	if err != nil {
		return false, err
	}
	collapsed = !collapsed
	return collapsed, p.SetCollapsed(ctx, collapsed)
}
