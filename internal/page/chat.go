package page

import (
	"context"
	"strings"

	"github.com/autopunish/panelctl/internal/document"
	"github.com/autopunish/panelctl/internal/domain"
	"github.com/autopunish/panelctl/internal/markup"
)

// StaffChat renders the scrollable message log and handles sends. While
// mounted, the router keeps it fresh through a subscription (polling by
// default, SSE when configured).
type StaffChat struct {
	limit int
}

// NewStaffChat creates the chat page renderer fetching up to limit messages
func NewStaffChat(limit int) *StaffChat {
	if limit <= 0 {
		limit = 50
	}
	return &StaffChat{limit: limit}
}

// Mount implements Renderer
func (c *StaffChat) Mount(pc *Context) {
	pc.Doc.Set(document.RegionMain, `<div class="page-content"><h2>Staff Chat</h2></div>`)
	go c.load(pc)
}

// Refresh implements Renderer
func (c *StaffChat) Refresh(pc *Context) {
	go c.load(pc)
}

// Send posts a message, then re-fetches the log so the displayed state is
// the server's. An empty message never reaches the network.
func (c *StaffChat) Send(pc *Context, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		pc.Notify.Error("Message cannot be empty")
		return
	}

	ctx, cancel := pc.CallCtx()
	defer cancel()
	if err := pc.API.SendChat(ctx, message); err != nil {
		pc.Log.WithError(err).Error("Failed to send chat message")
		pc.Notify.Error("Failed to send message: " + err.Error())
		return
	}
	c.load(pc)
}

func (c *StaffChat) load(pc *Context) {
	loadRegion(pc, document.RegionChat, "chat messages", func(ctx context.Context) (string, error) {
		messages, err := pc.API.ChatMessages(ctx, c.limit)
		if err != nil {
			return "", err
		}
		return renderChat(messages), nil
	})
}

func renderChat(messages []domain.ChatMessage) string {
	if len(messages) == 0 {
		return markup.NoResults("No messages yet. Be the first to send one!")
	}

	var b strings.Builder
	for _, msg := range messages {
		b.WriteString(`<div class="chat-message"><div class="message-header">`)
		b.WriteString(`<span class="message-user">` + markup.Escape(msg.StaffName) + `</span>`)
		if !msg.Timestamp.IsZero() {
			b.WriteString(`<span class="message-time">` + msg.Timestamp.Format("2006-01-02 15:04:05") + `</span>`)
		}
		b.WriteString(`</div><div class="message-content">` + markup.Escape(msg.Message) + `</div></div>`)
	}
	return b.String()
}
