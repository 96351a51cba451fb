package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/autopunish/panelctl/internal/domain"
)

// ListApprovals fetches the pending punishment approval queue
func (c *Client) ListApprovals(ctx context.Context) ([]domain.Approval, error) {
	var approvals []domain.Approval
	if err := c.do(ctx, http.MethodGet, "/api/approvals", nil, &approvals); err != nil {
		return nil, err
	}
	return approvals, nil
}

// ResolveApproval approves or denies a queued punishment on behalf of adminName
func (c *Client) ResolveApproval(ctx context.Context, id string, approve bool, adminName string) error {
	action := "deny"
	if approve {
		action = "approve"
	}
	path := fmt.Sprintf("/api/approvals/%s/%s?adminName=%s",
		url.PathEscape(id), action, url.QueryEscape(adminName))

	var resp mutationResponse
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s approval: %s", action, orUnknown(resp.Error))
	}
	return nil
}
