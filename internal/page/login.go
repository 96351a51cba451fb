package page

import (
	"strings"

	"github.com/autopunish/panelctl/internal/document"
	"github.com/autopunish/panelctl/internal/markup"
)

// Login renders the credential form. Empty fields are rejected before any
// network call; a rejected login renders the server's error text in place
// without navigating away; success stores the identity and redirects home.
type Login struct{}

// NewLogin creates the login page renderer
func NewLogin() *Login { return &Login{} }

// Mount implements Renderer
func (l *Login) Mount(pc *Context) {
	pc.Doc.Set(document.RegionMain, loginMarkup())
	pc.Doc.Set(document.RegionMessage, "")
}

// Refresh implements Renderer. The login page is not polled.
func (l *Login) Refresh(pc *Context) {}

// Submit posts the credentials
func (l *Login) Submit(pc *Context, username, password string) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		pc.Doc.Set(document.RegionMessage, markup.Error("Username and password are required"))
		return
	}

	ctx, cancel := pc.CallCtx()
	defer cancel()

	result, err := pc.API.Login(ctx, username, password)
	if !pc.Alive() {
		return
	}
	if err != nil {
		pc.Log.WithError(err).Error("Login request failed")
		pc.Doc.Set(document.RegionMessage, markup.Error("Login failed: "+err.Error()))
		return
	}
	if !result.Success || result.User == nil {
		pc.Doc.Set(document.RegionMessage, markup.Error(orDefault(result.Error, "Login failed")))
		return
	}

	pc.Sessions.Set(result.User, result.Token)
	pc.Notify.Success("Login successful")
	if pc.Goto != nil {
		pc.Goto("home")
	}
}

func loginMarkup() string {
	return `<div class="page-content"><h2>Staff Login</h2>` +
		`<p>Access the moderation dashboard</p>` +
		`<form id="login-form">` +
		`<input id="username" placeholder="Username">` +
		`<input id="password" type="password" placeholder="Password">` +
		`</form></div>`
}
