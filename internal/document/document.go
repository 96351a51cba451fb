// Package document models the page surface the renderers draw into: a set of
// named regions holding markup. Each page owns its own regions; navigation
// clears everything before the next page mounts.
package document

import "sync"

// Well-known region names shared between pages and the shell
const (
	RegionMain    = "main"
	RegionStats   = "stats"
	RegionRecent  = "recent-activity"
	RegionTable   = "punishments"
	RegionChat    = "chat-messages"
	RegionStaff   = "staff-list"
	RegionQueue   = "approvals"
	RegionMessage = "form-message"
)

// Document holds the rendered regions of the active page
type Document struct {
	mu      sync.RWMutex
	regions map[string]string
}

// New creates an empty document
func New() *Document {
	return &Document{regions: make(map[string]string)}
}

// Set replaces a region's markup
func (d *Document) Set(region, markup string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.regions[region] = markup
}

// Get returns a region's markup, or "" when the region does not exist
func (d *Document) Get(region string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.regions[region]
}

// Has reports whether the region has been rendered
func (d *Document) Has(region string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.regions[region]
	return ok
}

// Clear removes every region. Called on navigation before the next page mounts.
func (d *Document) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.regions = make(map[string]string)
}

// Regions returns a copy of the current region map
func (d *Document) Regions() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot := make(map[string]string, len(d.regions))
	for name, markup := range d.regions {
		snapshot[name] = markup
	}
	return snapshot
}
