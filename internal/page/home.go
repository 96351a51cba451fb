package page

import (
	"fmt"

	"github.com/autopunish/panelctl/internal/document"
	"github.com/autopunish/panelctl/internal/domain"
	"github.com/autopunish/panelctl/internal/markup"
)

// Home is the landing page: static welcome copy plus an asynchronously
// populated stats region. A failed stats fetch degrades the stats region
// only; the rest of the page stays up.
type Home struct{}

// NewHome creates the home page renderer
func NewHome() *Home { return &Home{} }

// Mount implements Renderer
func (h *Home) Mount(pc *Context) {
	pc.Doc.Set(document.RegionMain, homeMarkup())
	pc.Doc.Set(document.RegionStats, markup.Loading("statistics"))
	pc.Doc.Set(document.RegionRecent, markup.Loading("recent activity"))
	go h.loadStats(pc)
}

// Refresh implements Renderer. The home page is not polled.
func (h *Home) Refresh(pc *Context) {}

func (h *Home) loadStats(pc *Context) {
	ctx, cancel := pc.CallCtx()
	defer cancel()

	stats, err := pc.API.Stats(ctx)
	if !pc.Alive() {
		return
	}
	if err != nil {
		pc.Log.WithError(err).Error("Failed to load statistics")
		pc.Doc.Set(document.RegionStats, markup.Error("Failed to load statistics: "+err.Error()))
		pc.Doc.Set(document.RegionRecent, "Unable to load recent activity")
		return
	}
	pc.Doc.Set(document.RegionStats, renderStats(stats))
	pc.Doc.Set(document.RegionRecent,
		fmt.Sprintf("%d punishments in the last 24 hours", stats.RecentPunishments))
}

func renderStats(stats domain.PunishmentStats) string {
	return fmt.Sprintf(
		`<div class="stats-grid">`+
			`<div class="stat-card"><div class="stat-value">%d</div><div class="stat-label">Total Punishments</div></div>`+
			`<div class="stat-card"><div class="stat-value">%d</div><div class="stat-label">Warnings</div></div>`+
			`<div class="stat-card"><div class="stat-value">%d</div><div class="stat-label">Mutes</div></div>`+
			`<div class="stat-card"><div class="stat-value">%d</div><div class="stat-label">Bans</div></div>`+
			`</div>`,
		stats.TotalPunishments, stats.TotalWarns, stats.TotalMutes, stats.TotalBans)
}

func homeMarkup() string {
	return `<div class="page-content">` +
		`<h2>Welcome to the Punishment Directory</h2>` +
		`<p>This directory provides a public log of all punishments issued on our server. ` +
		`We believe in transparency and accountability for all moderation actions.</p>` +
		`<p>Use the navigation links to view specific types of punishments. ` +
		`The lists are updated automatically to ensure accuracy and completeness.</p>` +
		`</div>`
}
