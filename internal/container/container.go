package container

import (
	"github.com/autopunish/panelctl/internal/api"
	"github.com/autopunish/panelctl/internal/config"
	"github.com/autopunish/panelctl/internal/document"
	"github.com/autopunish/panelctl/internal/notify"
	"github.com/autopunish/panelctl/internal/page"
	"github.com/autopunish/panelctl/internal/router"
	"github.com/autopunish/panelctl/internal/session"
	"github.com/autopunish/panelctl/internal/subscription"
	"github.com/autopunish/panelctl/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *logger.Logger
	Doc      *document.Document
	Sessions *session.Store
	Client   *api.Client
	Notify   *notify.Service
	Router   *router.Router
}

// New creates a new dependency injection container. The confirmer is
// injected by the caller because it owns the interactive input stream.
func New(cfg *config.Config, log *logger.Logger, confirm page.Confirmer) (*Container, error) {
	sessions := session.NewStore(cfg.SessionFile, log)
	if err := sessions.Load(); err != nil {
		log.WithError(err).Warn("Failed to load cached session, starting anonymous")
	}

	client, err := api.New(cfg.APIBaseURL,
		api.WithTokenSource(sessions.Token),
	)
	if err != nil {
		return nil, err
	}

	notifier := notify.NewService(cfg.NotifyTTL, log)
	doc := document.New()

	// A configured stream URL swaps the chat page's poll timer for a
	// server-sent event feed.
	var chatSource subscription.Source
	if cfg.ChatStreamURL != "" {
		chatSource = &subscription.SSEStream{URL: cfg.ChatStreamURL, Log: log}
		log.WithField("url", cfg.ChatStreamURL).Info("Chat updates via event stream")
	}

	nav := router.New(router.Params{
		Doc:            doc,
		Sessions:       sessions,
		API:            client,
		Notify:         notifier,
		Log:            log,
		Confirm:        confirm,
		ListRefresh:    cfg.ListRefresh,
		ChatRefresh:    cfg.ChatRefresh,
		ChatLimit:      cfg.ChatLimit,
		RequestTimeout: cfg.RequestTimeout,
		ChatSource:     chatSource,
	})

	return &Container{
		Config:   cfg,
		Logger:   log,
		Doc:      doc,
		Sessions: sessions,
		Client:   client,
		Notify:   notifier,
		Router:   nav,
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRouter returns the page router
func (c *Container) GetRouter() *router.Router {
	return c.Router
}

// GetSessions returns the session store
func (c *Container) GetSessions() *session.Store {
	return c.Sessions
}

// GetClient returns the backend API client
func (c *Container) GetClient() *api.Client {
	return c.Client
}

// GetDocument returns the rendered document
func (c *Container) GetDocument() *document.Document {
	return c.Doc
}

// GetNotifier returns the notification service
func (c *Container) GetNotifier() *notify.Service {
	return c.Notify
}
