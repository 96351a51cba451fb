package page

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/autopunish/panelctl/internal/document"
	"github.com/autopunish/panelctl/internal/domain"
	"github.com/autopunish/panelctl/internal/markup"
)

// Punishments renders one of the three list pages, parameterized by type.
// Hidden records are filtered at render time for anonymous viewers no matter
// what the backend sent. Action methods exist only behind an active session.
type Punishments struct {
	typ domain.PunishmentType

	mu     sync.Mutex
	filter domain.PunishmentFilter
}

// NewPunishments creates a list page renderer for the given type
func NewPunishments(typ domain.PunishmentType) *Punishments {
	return &Punishments{typ: typ}
}

// Type returns the punishment type this page lists
func (p *Punishments) Type() domain.PunishmentType { return p.typ }

// Mount implements Renderer
func (p *Punishments) Mount(pc *Context) {
	p.mu.Lock()
	p.filter = domain.PunishmentFilter{}
	p.mu.Unlock()

	pc.Doc.Set(document.RegionMain, p.frameMarkup(pc))
	go p.load(pc)
}

// Refresh implements Renderer: the poll re-issues the current search
func (p *Punishments) Refresh(pc *Context) {
	go p.load(pc)
}

// Search re-issues a filtered fetch with the given form values
func (p *Punishments) Search(pc *Context, filter domain.PunishmentFilter) {
	p.mu.Lock()
	p.filter = filter
	p.mu.Unlock()
	p.load(pc)
}

// ClearSearch resets both filters and reloads the unfiltered list
func (p *Punishments) ClearSearch(pc *Context) {
	p.Search(pc, domain.PunishmentFilter{})
}

// SaveEvidence attaches an evidence link to a record, then re-fetches the
// list so the table reflects the server's last word.
func (p *Punishments) SaveEvidence(pc *Context, id, evidenceLink string) {
	if strings.TrimSpace(evidenceLink) == "" {
		pc.Notify.Error("Evidence link is required")
		return
	}

	ctx, cancel := pc.CallCtx()
	defer cancel()
	if err := pc.API.SetEvidence(ctx, id, evidenceLink); err != nil {
		pc.Log.WithError(err).Error("Failed to save evidence link")
		pc.Notify.Error("Failed to save evidence link: " + err.Error())
		return
	}

	pc.Notify.Success("Evidence link saved successfully")
	p.load(pc)
}

// SetHidden toggles a record's visibility after mandatory confirmation, then
// re-fetches the list.
func (p *Punishments) SetHidden(pc *Context, id string, hidden bool) {
	verb := "hide"
	if !hidden {
		verb = "unhide"
	}
	if !pc.Confirm.Confirm(fmt.Sprintf("Are you sure you want to %s this punishment?", verb)) {
		return
	}

	ctx, cancel := pc.CallCtx()
	defer cancel()
	if err := pc.API.SetHidden(ctx, id, hidden); err != nil {
		pc.Log.WithError(err).Error("Failed to update punishment visibility")
		pc.Notify.Error("Failed to update punishment visibility: " + err.Error())
		return
	}

	if hidden {
		pc.Notify.Success("Punishment hidden successfully")
	} else {
		pc.Notify.Success("Punishment unhidden successfully")
	}
	p.load(pc)
}

func (p *Punishments) load(pc *Context) {
	p.mu.Lock()
	filter := p.filter
	p.mu.Unlock()

	loadRegion(pc, document.RegionTable, string(p.typ), func(ctx context.Context) (string, error) {
		records, err := pc.API.ListPunishments(ctx, p.typ, filter)
		if err != nil {
			return "", err
		}
		return p.renderTable(records, pc.Sessions.Authenticated()), nil
	})
}

func (p *Punishments) renderTable(records []domain.Punishment, authenticated bool) string {
	if len(records) == 0 {
		return markup.NoResults(fmt.Sprintf("No %s found.", p.typ))
	}

	visible := domain.VisibleTo(records, authenticated)
	if len(visible) == 0 {
		return markup.NoResults(fmt.Sprintf("No visible %s found.", p.typ))
	}

	var b strings.Builder
	b.WriteString(`<table class="punishments-table"><thead><tr>`)
	b.WriteString(`<th>Player</th><th>Rule</th><th>Staff</th><th>Date</th><th>Duration</th><th>Evidence</th>`)
	if authenticated {
		b.WriteString(`<th>Actions</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)
	for _, record := range visible {
		b.WriteString(p.renderRow(record, authenticated))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func (p *Punishments) renderRow(record domain.Punishment, authenticated bool) string {
	player := markup.Escape(orDefault(record.PlayerName, "Unknown"))
	if record.Hidden {
		player += ` <span class="hidden-badge">HIDDEN</span>`
	}

	evidence := `<span class="no-evidence">No evidence</span>`
	if record.EvidenceLink != "" {
		evidence = markup.Link(record.EvidenceLink, "View Evidence")
	}

	date := "Unknown"
	if !record.Date.IsZero() {
		date = record.Date.Format("2006-01-02 15:04:05")
	}

	row := fmt.Sprintf(
		`<tr data-id="%s"><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>`,
		markup.Escape(record.ID),
		player,
		markup.Escape(orDefault(record.Rule, "Unknown")),
		markup.Escape(orDefault(record.StaffName, "Unknown")),
		markup.Escape(date),
		markup.Escape(record.DisplayDuration()),
		evidence,
	)
	if authenticated {
		evidenceLabel := "Add Evidence"
		if record.EvidenceLink != "" {
			evidenceLabel = "Edit Evidence"
		}
		hideLabel := "Hide"
		if record.Hidden {
			hideLabel = "Unhide"
		}
		row += fmt.Sprintf(
			`<td><button class="evidence-btn" data-id="%s">%s</button>`+
				`<button class="hide-btn" data-id="%s">%s</button></td>`,
			markup.Escape(record.ID), evidenceLabel,
			markup.Escape(record.ID), hideLabel,
		)
	}
	return row + `</tr>`
}

func (p *Punishments) frameMarkup(pc *Context) string {
	return fmt.Sprintf(
		`<div class="page-content"><h2>All %s</h2>`+
			`<p>All issued %s on our server</p>`+
			`<div class="search-box">`+
			`<input id="search-player" placeholder="Search by player...">`+
			`<input id="search-rule" placeholder="Search by rule...">`+
			`</div></div>`,
		markup.Escape(p.typ.Title()), markup.Escape(string(p.typ)))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
