// Package router maps location fragments to page renderers and owns the
// refresh-timer lifecycle: the active page's subscription is torn down before
// the next page mounts, so at most one is ever live, and late completions
// from an abandoned page are discarded through an epoch guard.
package router

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/autopunish/panelctl/internal/api"
	"github.com/autopunish/panelctl/internal/document"
	"github.com/autopunish/panelctl/internal/domain"
	"github.com/autopunish/panelctl/internal/notify"
	"github.com/autopunish/panelctl/internal/page"
	"github.com/autopunish/panelctl/internal/session"
	"github.com/autopunish/panelctl/internal/subscription"
	"github.com/autopunish/panelctl/pkg/logger"
)

// Route is a resolved page key
type Route string

// Page keys driven by the `#/...` navigation surface
const (
	RouteHome      Route = "home"
	RouteWarns     Route = "warns"
	RouteMutes     Route = "mutes"
	RouteBans      Route = "bans"
	RouteLogin     Route = "login"
	RouteChat      Route = "staff-chat"
	RouteTeam      Route = "team-management"
	RouteApprovals Route = "approvals"
	RouteNotFound  Route = "not-found"
)

// ParseFragment derives a page key from a location fragment. Empty fragments
// ("", "#", "#/") resolve to the default key.
func ParseFragment(fragment string) string {
	key := strings.TrimPrefix(fragment, "#")
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return string(RouteHome)
	}
	return key
}

// Params configures a Router
type Params struct {
	Doc      *document.Document
	Sessions *session.Store
	API      *api.Client
	Notify   *notify.Service
	Log      *logger.Logger
	Confirm  page.Confirmer

	ListRefresh    time.Duration
	ChatRefresh    time.Duration
	ChatLimit      int
	RequestTimeout time.Duration

	// ChatSource overrides the chat page's update transport. Nil means a
	// Poller at ChatRefresh.
	ChatSource subscription.Source
}

// Router resolves navigation events into mounted pages
type Router struct {
	params   Params
	pages    map[Route]page.Renderer
	notFound *page.NotFound

	mu     sync.Mutex
	epoch  uint64
	cancel context.CancelFunc
	active Route
	sub    subscription.Subscription
	pc     *page.Context
}

// New creates a router with one renderer per page key
func New(params Params) *Router {
	if params.ListRefresh <= 0 {
		params.ListRefresh = 60 * time.Second
	}
	if params.ChatRefresh <= 0 {
		params.ChatRefresh = 10 * time.Second
	}

	r := &Router{
		params:   params,
		notFound: page.NewNotFound(),
	}
	r.pages = map[Route]page.Renderer{
		RouteHome:      page.NewHome(),
		RouteWarns:     page.NewPunishments(domain.TypeWarns),
		RouteMutes:     page.NewPunishments(domain.TypeMutes),
		RouteBans:      page.NewPunishments(domain.TypeBans),
		RouteLogin:     page.NewLogin(),
		RouteChat:      page.NewStaffChat(params.ChatLimit),
		RouteTeam:      page.NewTeam(),
		RouteApprovals: page.NewApprovals(),
	}
	return r
}

// gated reports whether the page key requires an authenticated session
func gated(route Route) bool {
	switch route {
	case RouteChat, RouteTeam, RouteApprovals:
		return true
	}
	return false
}

// polled reports whether the router keeps the page fresh with the list poller
func polled(route Route) bool {
	switch route {
	case RouteWarns, RouteMutes, RouteBans, RouteApprovals:
		return true
	}
	return false
}

// Navigate resolves a fragment, tears down the previous page and mounts the
// next one. It returns the route actually rendered, which differs from the
// requested one on auth redirects and unknown keys.
func (r *Router) Navigate(fragment string) Route {
	requested := ParseFragment(fragment)
	route := Route(requested)

	r.mu.Lock()

	// Teardown before anything else: cancel the page context (which ends
	// any live subscription and in-flight loads) and bump the epoch so
	// stale completions are dropped.
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.sub != nil {
		r.sub.Stop()
		r.sub = nil
	}
	r.epoch++
	epoch := r.epoch

	authenticated := r.params.Sessions.Authenticated()
	if gated(route) && !authenticated {
		r.params.Log.WithField("page", requested).Info("Session required, redirecting to login")
		route = RouteLogin
	}
	if route == RouteLogin && authenticated {
		route = RouteHome
	}

	renderer, known := r.pages[route]
	if !known {
		r.notFound.Requested = requested
		renderer = r.notFound
		route = RouteNotFound
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.active = route

	r.params.Doc.Clear()
	pc := &page.Context{
		Ctx:      ctx,
		Doc:      r.params.Doc,
		Sessions: r.params.Sessions,
		API:      r.params.API,
		Notify:   r.params.Notify,
		Log:      r.params.Log,
		Confirm:  r.params.Confirm,
		Timeout:  r.params.RequestTimeout,
		Mounted:  r.mountedGuard(epoch),
		Goto:     func(key string) { r.Navigate(key) },
	}
	r.pc = pc
	r.mu.Unlock()

	r.params.Log.WithField("page", string(route)).Debug("Mounting page")
	renderer.Mount(pc)

	r.startSubscription(ctx, epoch, route, renderer, pc)
	return route
}

// startSubscription attaches the single live update feed for pages that have
// one. If another navigation won the race in the meantime, the fresh
// subscription is stopped immediately instead of installed.
func (r *Router) startSubscription(ctx context.Context, epoch uint64, route Route, renderer page.Renderer, pc *page.Context) {
	var sub subscription.Subscription
	switch {
	case polled(route):
		sub = subscription.Poller{Every: r.params.ListRefresh}.Subscribe(ctx, func() { renderer.Refresh(pc) })
	case route == RouteChat:
		source := r.params.ChatSource
		if source == nil {
			source = subscription.Poller{Every: r.params.ChatRefresh}
		}
		sub = source.Subscribe(ctx, func() { renderer.Refresh(pc) })
	default:
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.epoch != epoch {
		sub.Stop()
		return
	}
	r.sub = sub
}

func (r *Router) mountedGuard(epoch uint64) func() bool {
	return func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.epoch == epoch
	}
}

// Active returns the currently rendered route
func (r *Router) Active() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// ActivePage returns the renderer for the currently rendered route
func (r *Router) ActivePage() page.Renderer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if renderer, ok := r.pages[r.active]; ok {
		return renderer
	}
	return r.notFound
}

// Context returns the page context of the current navigation epoch
func (r *Router) Context() *page.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pc
}

// Subscribed reports whether a live update feed is currently installed
func (r *Router) Subscribed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sub != nil
}

// Shutdown tears down the active page and its subscription
func (r *Router) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.sub != nil {
		r.sub.Stop()
		r.sub = nil
	}
	r.epoch++
	r.active = ""
	r.pc = nil
}
