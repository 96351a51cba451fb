package domain

import "strings"

// PunishmentType identifies one of the three moderation list pages
type PunishmentType string

const (
	TypeWarns PunishmentType = "warns"
	TypeMutes PunishmentType = "mutes"
	TypeBans  PunishmentType = "bans"
)

// Valid reports whether the type names a known punishment list
func (t PunishmentType) Valid() bool {
	switch t {
	case TypeWarns, TypeMutes, TypeBans:
		return true
	}
	return false
}

// Title returns the capitalized display name ("Warns", "Mutes", "Bans")
func (t PunishmentType) Title() string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Punishment is a moderation record issued against a player. Records originate
// on the backend; the client only reads them and, for staff, toggles the
// hidden flag or attaches an evidence link.
type Punishment struct {
	ID           string    `json:"id"`
	PlayerName   string    `json:"player_name"`
	Rule         string    `json:"rule"`
	StaffName    string    `json:"staff_name"`
	Date         Timestamp `json:"date"`
	Duration     string    `json:"duration"`
	EvidenceLink string    `json:"evidence_link,omitempty"`
	Hidden       bool      `json:"hidden"`
}

// Permanent reports whether the duration carries the "0" sentinel
func (p Punishment) Permanent() bool {
	return p.Duration == "0"
}

// DisplayDuration returns the duration the way the panel renders it
func (p Punishment) DisplayDuration() string {
	if p.Permanent() {
		return "Permanent"
	}
	if p.Duration == "" {
		return "Unknown"
	}
	return p.Duration
}

// PunishmentFilter carries the search form values for a list page
type PunishmentFilter struct {
	Player string
	Rule   string
}

// Empty reports whether no filter is set
func (f PunishmentFilter) Empty() bool {
	return f.Player == "" && f.Rule == ""
}

// PunishmentStats is the aggregate counters block on the home page
type PunishmentStats struct {
	TotalPunishments  int `json:"totalPunishments"`
	TotalWarns        int `json:"totalWarns"`
	TotalMutes        int `json:"totalMutes"`
	TotalBans         int `json:"totalBans"`
	RecentPunishments int `json:"recentPunishments"`
}

// VisibleTo filters hidden records out for anonymous viewers. Authenticated
// viewers see everything. The backend is expected to filter too; this runs
// regardless of what the payload contained.
func VisibleTo(records []Punishment, authenticated bool) []Punishment {
	if authenticated {
		return records
	}
	visible := make([]Punishment, 0, len(records))
	for _, p := range records {
		if !p.Hidden {
			visible = append(visible, p)
		}
	}
	return visible
}
