package page

import (
	"fmt"

	"github.com/autopunish/panelctl/internal/document"
	"github.com/autopunish/panelctl/internal/markup"
)

// NotFound renders the fallback for unknown page keys
type NotFound struct {
	// Requested is set by the router to the unresolved key
	Requested string
}

// NewNotFound creates the not-found renderer
func NewNotFound() *NotFound { return &NotFound{} }

// Mount implements Renderer
func (n *NotFound) Mount(pc *Context) {
	pc.Doc.Set(document.RegionMain, fmt.Sprintf(
		`<div class="page-content"><h2>Page Not Found</h2>`+
			`<p>The page "%s" doesn't exist.</p></div>`,
		markup.Escape(n.Requested)))
}

// Refresh implements Renderer
func (n *NotFound) Refresh(pc *Context) {}
