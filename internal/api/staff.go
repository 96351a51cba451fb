package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/autopunish/panelctl/internal/domain"
)

type chatResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
	Error    string               `json:"error,omitempty"`
}

// ChatMessages fetches the latest chat entries, newest last
func (c *Client) ChatMessages(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	path := "/api/staff/chat"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	var resp chatResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("load chat: %s", resp.Error)
	}
	return resp.Messages, nil
}

// SendChat posts a new chat message
func (c *Client) SendChat(ctx context.Context, message string) error {
	body := map[string]string{"message": message}
	return c.do(ctx, http.MethodPost, "/api/staff/chat", body, nil)
}

type staffListResponse struct {
	Users []domain.StaffUser `json:"users"`
	Error string             `json:"error,omitempty"`
}

type mutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListStaff fetches the current staff accounts
func (c *Client) ListStaff(ctx context.Context) ([]domain.StaffUser, error) {
	var resp staffListResponse
	if err := c.do(ctx, http.MethodGet, "/api/staff/users", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("list staff: %s", resp.Error)
	}
	return resp.Users, nil
}

// AddStaff creates a staff account and returns the server's confirmation text
func (c *Client) AddStaff(ctx context.Context, req domain.AddStaffRequest) (string, error) {
	var resp mutationResponse
	if err := c.do(ctx, http.MethodPost, "/api/staff/users", req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("add staff: %s", orUnknown(resp.Error))
	}
	return resp.Message, nil
}

// DeleteStaff removes a staff account by username
func (c *Client) DeleteStaff(ctx context.Context, username string) error {
	path := fmt.Sprintf("/api/staff/users/%s", url.PathEscape(username))
	var resp mutationResponse
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("delete staff: %s", orUnknown(resp.Error))
	}
	return nil
}

func orUnknown(message string) string {
	if message == "" {
		return "unknown error"
	}
	return message
}
