package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/autopunish/panelctl/internal/document"
	"github.com/autopunish/panelctl/internal/domain"
	"github.com/autopunish/panelctl/internal/markup"
)

// Approvals renders the queue of punishments awaiting admin sign-off.
type Approvals struct{}

// NewApprovals creates the approvals page renderer
func NewApprovals() *Approvals { return &Approvals{} }

// Mount implements Renderer
func (a *Approvals) Mount(pc *Context) {
	pc.Doc.Set(document.RegionMain,
		`<div class="page-content"><h2>Pending Approvals</h2></div>`)
	go a.load(pc)
}

// Refresh implements Renderer
func (a *Approvals) Refresh(pc *Context) {
	go a.load(pc)
}

// Resolve approves or denies a queued punishment on behalf of the current
// session identity, then re-fetches the queue.
func (a *Approvals) Resolve(pc *Context, id string, approve bool) {
	current := pc.Sessions.Current()
	if current == nil {
		pc.Notify.Error("No active session")
		return
	}

	action := "deny"
	if approve {
		action = "approve"
	}

	ctx, cancel := pc.CallCtx()
	defer cancel()
	if err := pc.API.ResolveApproval(ctx, id, approve, current.Username); err != nil {
		pc.Log.WithError(err).Error("Failed to " + action + " punishment")
		pc.Notify.Error(fmt.Sprintf("Failed to %s punishment: %s", action, err.Error()))
		return
	}

	pc.Notify.Success(fmt.Sprintf("Punishment %sd successfully", action))
	a.load(pc)
}

func (a *Approvals) load(pc *Context) {
	loadRegion(pc, document.RegionQueue, "approvals", func(ctx context.Context) (string, error) {
		approvals, err := pc.API.ListApprovals(ctx)
		if err != nil {
			return "", err
		}
		return renderApprovals(approvals), nil
	})
}

func renderApprovals(approvals []domain.Approval) string {
	if len(approvals) == 0 {
		return markup.NoResults("No pending approvals!")
	}

	var b strings.Builder
	b.WriteString(`<div class="approvals-grid">`)
	for _, approval := range approvals {
		queued := "Unknown"
		if !approval.QueuedDate.IsZero() {
			queued = approval.QueuedDate.Format("2006-01-02 15:04:05")
		}
		b.WriteString(fmt.Sprintf(
			`<div class="approval-card" data-id="%s">`+
				`<h3>Approval ID: %s</h3>`+
				`<p><strong>Player:</strong> %s</p>`+
				`<p><strong>Rule:</strong> %s</p>`+
				`<p><strong>Punishment:</strong> %s (%s)</p>`+
				`<p><strong>Requested by:</strong> %s</p>`+
				`<p><strong>Date:</strong> %s</p>`+
				`</div>`,
			markup.Escape(approval.ApprovalID),
			markup.Escape(approval.ApprovalID),
			markup.Escape(approval.PlayerName),
			markup.Escape(approval.Rule),
			markup.Escape(approval.Type),
			markup.Escape(approval.DisplayDuration()),
			markup.Escape(approval.StaffName),
			markup.Escape(queued),
		))
	}
	b.WriteString(`</div>`)
	return b.String()
}
