package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/autopunish/panelctl/internal/config"
	"github.com/autopunish/panelctl/internal/container"
	"github.com/autopunish/panelctl/internal/domain"
	"github.com/autopunish/panelctl/internal/page"
	"github.com/autopunish/panelctl/internal/router"
	"github.com/autopunish/panelctl/pkg/logger"
)

// Resources holds all resources that need cleanup
type Resources struct {
	container *container.Container
	log       *logger.Logger
	mu        sync.Mutex
	closed    bool
}

// Cleanup gracefully tears down the active page and flushes state
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	r.log.Info("Starting graceful shutdown...")
	r.container.GetRouter().Shutdown()
	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel, cfg.ConsoleLogging)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"api_url":     cfg.APIBaseURL,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting panelctl")

	shell := newShell(os.Stdin, os.Stdout)

	// Create dependency injection container
	app, err := container.New(cfg, log, shell)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}
	shell.app = app

	// Validate the cached session against the backend before trusting it
	verifyCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	state, err := app.GetClient().Session(verifyCtx)
	cancel()
	switch {
	case err != nil:
		log.WithError(err).Warn("Session check failed, starting anonymous")
		app.GetSessions().Clear()
	case !state.Authenticated:
		app.GetSessions().Clear()
	default:
		log.WithField("username", state.User.Username).Info("Session restored")
	}

	// Create resources manager for cleanup
	resources := &Resources{container: app, log: log}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	app.GetRouter().Navigate("#/home")

	// Run the shell in a goroutine so signals still interrupt us
	done := make(chan struct{})
	go func() {
		defer close(done)
		shell.run()
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case <-done:
		log.Info("Shell exited")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// shell is the interactive command loop. It doubles as the confirmation
// prompt for destructive page actions.
type shell struct {
	app *container.Container
	in  *bufio.Reader
	out *os.File
}

func newShell(in *os.File, out *os.File) *shell {
	return &shell{in: bufio.NewReader(in), out: out}
}

// Confirm implements page.Confirmer with a y/N prompt
func (s *shell) Confirm(prompt string) bool {
	fmt.Fprintf(s.out, "%s [y/N]: ", prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (s *shell) run() {
	fmt.Fprintln(s.out, "panelctl - type 'help' for commands")
	for {
		s.drainNotifications()
		fmt.Fprintf(s.out, "panelctl:%s> ", s.app.GetRouter().Active())
		line, err := s.in.ReadString('\n')
		if err != nil {
			return
		}
		if quit := s.dispatch(strings.Fields(strings.TrimSpace(line))); quit {
			return
		}
	}
}

// dispatch runs one command line and reports whether the shell should exit
func (s *shell) dispatch(args []string) bool {
	if len(args) == 0 {
		return false
	}
	nav := s.app.GetRouter()

	switch args[0] {
	case "quit", "exit":
		return true

	case "help":
		s.printHelp()

	case "go", "open":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "usage: go <page>")
			break
		}
		rendered := nav.Navigate("#/" + args[1])
		fmt.Fprintf(s.out, "-> %s\n", rendered)

	case "show":
		s.show()

	case "refresh":
		if pc := nav.Context(); pc != nil {
			nav.ActivePage().Refresh(pc)
		}

	case "whoami":
		if current := s.app.GetSessions().Current(); current != nil {
			fmt.Fprintf(s.out, "%s (%s)\n", current.Username, current.Role)
		} else {
			fmt.Fprintln(s.out, "not logged in")
		}

	case "login":
		s.login(args[1:])

	case "logout":
		s.logout()

	case "search":
		s.search(args[1:])

	case "clear-search":
		if p, ok := nav.ActivePage().(*page.Punishments); ok {
			p.ClearSearch(nav.Context())
		} else {
			fmt.Fprintln(s.out, "open a punishment list first")
		}

	case "evidence":
		s.evidence(args[1:])

	case "hide", "unhide":
		s.setHidden(args)

	case "chat":
		s.chat(args[1:])

	case "staff":
		s.staff(args[1:])

	case "approve", "deny":
		s.resolve(args)

	default:
		fmt.Fprintf(s.out, "unknown command %q, try 'help'\n", args[0])
	}
	return false
}

func (s *shell) printHelp() {
	fmt.Fprint(s.out, `Commands:
  go <page>              open a page (home, warns, mutes, bans, login,
                         staff-chat, team-management, approvals)
  show                   print the rendered page regions
  refresh                re-fetch the current page
  search <player> [rule] filter the open punishment list
  clear-search           drop the active filter
  evidence <id> <url>    attach an evidence link to a punishment
  hide <id> | unhide <id>
  chat <message...>      send a staff chat message
  staff add <name> [role] | staff del <name>
  approve <id> | deny <id>
  login [username]       authenticate (prompts for password)
  logout
  whoami
  quit
`)
}

func (s *shell) show() {
	regions := s.app.GetDocument().Regions()
	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "== %s ==\n%s\n", name, regions[name])
	}
}

func (s *shell) drainNotifications() {
	for _, n := range s.app.GetNotifier().Active() {
		fmt.Fprintf(s.out, "[%s] %s\n", n.Severity, n.Message)
	}
}

func (s *shell) login(args []string) {
	nav := s.app.GetRouter()
	if nav.Navigate("#/login") != router.RouteLogin {
		fmt.Fprintln(s.out, "already logged in")
		return
	}

	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		fmt.Fprint(s.out, "Username: ")
		line, err := s.in.ReadString('\n')
		if err != nil {
			return
		}
		username = strings.TrimSpace(line)
	}

	fmt.Fprint(s.out, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(s.out)
	if err != nil {
		fmt.Fprintf(s.out, "could not read password: %v\n", err)
		return
	}

	if p, ok := nav.ActivePage().(*page.Login); ok {
		p.Submit(nav.Context(), username, string(password))
	}
}

func (s *shell) logout() {
	client := s.app.GetClient()
	ctx, cancel := context.WithTimeout(context.Background(), s.app.GetConfig().RequestTimeout)
	defer cancel()
	if err := client.Logout(ctx); err != nil {
		s.app.GetLogger().WithError(err).Warn("Logout request failed")
	}
	s.app.GetSessions().Clear()
	s.app.GetRouter().Navigate("#/home")
	fmt.Fprintln(s.out, "logged out")
}

func (s *shell) search(args []string) {
	p, ok := s.app.GetRouter().ActivePage().(*page.Punishments)
	if !ok {
		fmt.Fprintln(s.out, "open a punishment list first (go warns|mutes|bans)")
		return
	}
	filter := domain.PunishmentFilter{}
	if len(args) > 0 {
		filter.Player = args[0]
	}
	if len(args) > 1 {
		filter.Rule = strings.Join(args[1:], " ")
	}
	p.Search(s.app.GetRouter().Context(), filter)
}

func (s *shell) evidence(args []string) {
	p, ok := s.app.GetRouter().ActivePage().(*page.Punishments)
	if !ok {
		fmt.Fprintln(s.out, "open a punishment list first")
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(s.out, "usage: evidence <id> <url>")
		return
	}
	p.SaveEvidence(s.app.GetRouter().Context(), args[0], args[1])
}

func (s *shell) setHidden(args []string) {
	p, ok := s.app.GetRouter().ActivePage().(*page.Punishments)
	if !ok {
		fmt.Fprintln(s.out, "open a punishment list first")
		return
	}
	if len(args) < 2 {
		fmt.Fprintf(s.out, "usage: %s <id>\n", args[0])
		return
	}
	p.SetHidden(s.app.GetRouter().Context(), args[1], args[0] == "hide")
}

func (s *shell) chat(args []string) {
	c, ok := s.app.GetRouter().ActivePage().(*page.StaffChat)
	if !ok {
		fmt.Fprintln(s.out, "open the chat first (go staff-chat)")
		return
	}
	c.Send(s.app.GetRouter().Context(), strings.Join(args, " "))
}

func (s *shell) staff(args []string) {
	t, ok := s.app.GetRouter().ActivePage().(*page.Team)
	if !ok {
		fmt.Fprintln(s.out, "open team management first (go team-management)")
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(s.out, "usage: staff add <name> [role] | staff del <name>")
		return
	}

	switch args[0] {
	case "add":
		role := domain.RoleStaff
		if len(args) > 2 {
			role = domain.Role(args[2])
		}
		fmt.Fprint(s.out, "Password for new account: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(s.out)
		if err != nil {
			fmt.Fprintf(s.out, "could not read password: %v\n", err)
			return
		}
		t.AddStaff(s.app.GetRouter().Context(), args[1], string(password), role)
	case "del", "delete":
		t.DeleteStaff(s.app.GetRouter().Context(), args[1])
	default:
		fmt.Fprintln(s.out, "usage: staff add <name> [role] | staff del <name>")
	}
}

func (s *shell) resolve(args []string) {
	a, ok := s.app.GetRouter().ActivePage().(*page.Approvals)
	if !ok {
		fmt.Fprintln(s.out, "open the approvals queue first (go approvals)")
		return
	}
	if len(args) < 2 {
		fmt.Fprintf(s.out, "usage: %s <id>\n", args[0])
		return
	}
	a.Resolve(s.app.GetRouter().Context(), args[1], args[0] == "approve")
}
