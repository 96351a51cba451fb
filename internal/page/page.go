// Package page contains one renderer per logical panel page. A renderer is a
// function of (current auth state, fetched data) to markup written into the
// document's regions, plus the action methods the shell binds to user input.
package page

import (
	"context"
	"time"

	"github.com/autopunish/panelctl/internal/api"
	"github.com/autopunish/panelctl/internal/document"
	"github.com/autopunish/panelctl/internal/notify"
	"github.com/autopunish/panelctl/internal/session"
	"github.com/autopunish/panelctl/pkg/logger"
)

// Confirmer asks the user to approve a destructive action before it runs
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Context carries everything a renderer needs for one mounted page. The
// embedded context is cancelled when the user navigates away.
type Context struct {
	Ctx      context.Context
	Doc      *document.Document
	Sessions *session.Store
	API      *api.Client
	Notify   *notify.Service
	Log      *logger.Logger
	Confirm  Confirmer
	Timeout  time.Duration

	// Mounted reports whether this page is still the active one. Late
	// network completions check it before touching the document.
	Mounted func() bool

	// Goto navigates to another page key ("home", "login", ...)
	Goto func(route string)
}

// Alive reports whether document writes from this context are still relevant
func (pc *Context) Alive() bool {
	if pc.Mounted == nil {
		return true
	}
	return pc.Mounted()
}

// CallCtx derives the per-request context used for one network operation
func (pc *Context) CallCtx() (context.Context, context.CancelFunc) {
	timeout := pc.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(pc.Ctx, timeout)
}

// Renderer is a mounted page. Mount draws the initial markup and kicks off
// any asynchronous loads; Refresh re-fetches for pages the router polls.
type Renderer interface {
	Mount(pc *Context)
	Refresh(pc *Context)
}
