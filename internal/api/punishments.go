package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/autopunish/panelctl/internal/domain"
)

type punishmentListResponse struct {
	Punishments []domain.Punishment `json:"punishments"`
	Error       string              `json:"error,omitempty"`
}

// ListPunishments fetches one punishment list, optionally filtered by player
// name and rule text. An application-level error in a 2xx body is surfaced
// exactly like a transport failure.
func (c *Client) ListPunishments(ctx context.Context, typ domain.PunishmentType, filter domain.PunishmentFilter) ([]domain.Punishment, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("unknown punishment type %q", typ)
	}

	path := "/api/punishments/" + string(typ)
	query := url.Values{}
	if filter.Player != "" {
		query.Set("player", filter.Player)
	}
	if filter.Rule != "" {
		query.Set("rule", filter.Rule)
	}
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp punishmentListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("list %s: %s", typ, resp.Error)
	}
	return resp.Punishments, nil
}

// Stats fetches the aggregate punishment counters for the home page
func (c *Client) Stats(ctx context.Context) (domain.PunishmentStats, error) {
	var stats domain.PunishmentStats
	if err := c.do(ctx, http.MethodGet, "/api/punishments/stats", nil, &stats); err != nil {
		return domain.PunishmentStats{}, err
	}
	return stats, nil
}

// SetEvidence attaches or replaces the evidence link on a punishment
func (c *Client) SetEvidence(ctx context.Context, id, evidenceLink string) error {
	body := map[string]string{"evidence_link": evidenceLink}
	path := fmt.Sprintf("/api/punishments/%s/evidence", url.PathEscape(id))
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// SetHidden toggles a punishment's visibility in the public directory
func (c *Client) SetHidden(ctx context.Context, id string, hidden bool) error {
	body := map[string]bool{"hidden": hidden}
	path := fmt.Sprintf("/api/punishments/%s/hide", url.PathEscape(id))
	return c.do(ctx, http.MethodPut, path, body, nil)
}
