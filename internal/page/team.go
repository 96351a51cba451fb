package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/autopunish/panelctl/internal/document"
	"github.com/autopunish/panelctl/internal/domain"
	"github.com/autopunish/panelctl/internal/markup"
)

// Team renders the staff roster and the add-staff form. Deleting an account
// needs explicit confirmation, and the entry matching the current session
// identity never carries a delete affordance.
type Team struct{}

// NewTeam creates the team management page renderer
func NewTeam() *Team { return &Team{} }

// Mount implements Renderer
func (t *Team) Mount(pc *Context) {
	pc.Doc.Set(document.RegionMain,
		`<div class="page-content"><h2>Team Management</h2></div>`)
	pc.Doc.Set(document.RegionMessage, "")
	go t.load(pc)
}

// Refresh implements Renderer. The team page is loaded on demand only.
func (t *Team) Refresh(pc *Context) {}

// AddStaff creates a new staff account and re-fetches the roster on success
func (t *Team) AddStaff(pc *Context, username, password string, role domain.Role) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		pc.Doc.Set(document.RegionMessage, markup.Error("Username and password are required"))
		return
	}
	if role == "" {
		role = domain.RoleStaff
	}
	if !role.Valid() {
		pc.Doc.Set(document.RegionMessage, markup.Error(fmt.Sprintf("Unknown role %q", role)))
		return
	}

	ctx, cancel := pc.CallCtx()
	defer cancel()
	message, err := pc.API.AddStaff(ctx, domain.AddStaffRequest{
		Username: username,
		Password: password,
		Role:     role,
	})
	if !pc.Alive() {
		return
	}
	if err != nil {
		pc.Log.WithError(err).Error("Failed to add staff member")
		pc.Doc.Set(document.RegionMessage, markup.Error("Failed to add staff member: "+err.Error()))
		return
	}

	pc.Doc.Set(document.RegionMessage,
		fmt.Sprintf(`<p class="success">%s</p>`, markup.Escape(orDefault(message, "Staff member added"))))
	pc.Notify.Success("Staff member added successfully")
	t.load(pc)
}

// DeleteStaff removes an account after confirmation. Self-deletion is
// refused before any confirmation or network call.
func (t *Team) DeleteStaff(pc *Context, username string) {
	if current := pc.Sessions.Current(); current != nil && current.Username == username {
		pc.Notify.Error("You cannot delete your own account")
		return
	}
	if !pc.Confirm.Confirm(fmt.Sprintf("Are you sure you want to delete staff member %q?", username)) {
		return
	}

	ctx, cancel := pc.CallCtx()
	defer cancel()
	if err := pc.API.DeleteStaff(ctx, username); err != nil {
		pc.Log.WithError(err).Error("Failed to delete staff member")
		pc.Notify.Error("Failed to delete staff member: " + err.Error())
		return
	}

	pc.Notify.Success("Staff member deleted successfully")
	t.load(pc)
}

func (t *Team) load(pc *Context) {
	loadRegion(pc, document.RegionStaff, "staff members", func(ctx context.Context) (string, error) {
		users, err := pc.API.ListStaff(ctx)
		if err != nil {
			return "", err
		}
		return renderStaffList(users, pc.Sessions.Current()), nil
	})
}

func renderStaffList(users []domain.StaffUser, current *domain.User) string {
	if len(users) == 0 {
		return markup.NoResults("No staff members found.")
	}

	var b strings.Builder
	for _, user := range users {
		uuid := user.UUID
		if uuid == "" {
			uuid = "N/A"
		}
		b.WriteString(`<div class="staff-member-card">`)
		b.WriteString(`<div class="staff-member-name">` + markup.Escape(user.Username) + `</div>`)
		b.WriteString(`<div class="staff-member-role">` + markup.Escape(string(user.Role)) + `</div>`)
		b.WriteString(`<div class="staff-member-uuid">` + markup.Escape(uuid) + `</div>`)
		if current != nil && current.Username == user.Username {
			b.WriteString(`<span class="current-user">(You)</span>`)
		} else {
			b.WriteString(fmt.Sprintf(`<button class="delete-staff-btn" data-username="%s">Delete</button>`,
				markup.Escape(user.Username)))
		}
		b.WriteString(`</div>`)
	}
	return b.String()
}
