// Package paneltest provides an in-memory stand-in for the moderation
// backend. Tests point an api.Client at it and drive the full page
// lifecycle against deterministic data.
package paneltest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/autopunish/panelctl/internal/domain"
)

// Server is a fake moderation backend with canned data and failure knobs
type Server struct {
	mu sync.Mutex

	Accounts    map[string]string // username -> password
	Users       map[string]domain.User
	Punishments map[domain.PunishmentType][]domain.Punishment
	StatsData   domain.PunishmentStats
	Chat        []domain.ChatMessage
	Staff       []domain.StaffUser
	Approvals   []domain.Approval

	// Failure knobs. When set, the matching endpoints answer 500.
	FailStats bool
	FailLists bool

	// Call counters for asserting re-fetch behaviour
	ListCalls      map[domain.PunishmentType]int
	ChatCalls      int
	StaffListCalls int
	DeleteCalls    int
	ApprovalCalls  int

	tokens map[string]string // token -> username

	httpServer *httptest.Server
}

// NewServer starts a fake backend with empty data. Callers seed the exported
// fields before navigating.
func NewServer() *Server {
	s := &Server{
		Accounts:    map[string]string{},
		Users:       map[string]domain.User{},
		Punishments: map[domain.PunishmentType][]domain.Punishment{},
		ListCalls:   map[domain.PunishmentType]int{},
		tokens:      map[string]string{},
	}
	s.httpServer = httptest.NewServer(s.routes())
	return s
}

// URL returns the base URL clients should point at
func (s *Server) URL() string { return s.httpServer.URL }

// Close shuts the fake backend down
func (s *Server) Close() { s.httpServer.Close() }

// AddAccount registers a login with its panel identity
func (s *Server) AddAccount(username, password string, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Accounts[username] = password
	s.Users[username] = domain.User{Username: username, Role: role, UUID: uuid.NewString()}
}

// Seed replaces the punishment list for one type
func (s *Server) Seed(typ domain.PunishmentType, records []domain.Punishment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Punishments[typ] = records
}

// Calls returns how many list fetches the given type has served
func (s *Server) Calls(typ domain.PunishmentType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ListCalls[typ]
}

// ChatCallCount returns how many chat list fetches have been served
func (s *Server) ChatCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ChatCalls
}

// StaffListCallCount returns how many roster fetches have been served
func (s *Server) StaffListCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.StaffListCalls
}

// DeleteCallCount returns how many staff deletions have been attempted
func (s *Server) DeleteCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.DeleteCalls
}

// Punishment looks a record up by ID across every list
func (s *Server) Punishment(id string) (domain.Punishment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, records := range s.Punishments {
		for _, p := range records {
			if p.ID == id {
				return p, true
			}
		}
	}
	return domain.Punishment{}, false
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/session", s.handleSession)
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
		})

		r.Route("/punishments", func(r chi.Router) {
			r.Get("/stats", s.handleStats)
			r.Get("/{type}", s.handleList)
			r.Put("/{id}/evidence", s.handleEvidence)
			r.Put("/{id}/hide", s.handleHide)
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/chat", s.handleChatList)
			r.Post("/chat", s.handleChatSend)
			r.Get("/users", s.handleStaffList)
			r.Post("/users", s.handleStaffAdd)
			r.Delete("/users/{username}", s.handleStaffDelete)
		})

		r.Route("/approvals", func(r chi.Router) {
			r.Get("/", s.handleApprovals)
			r.Post("/{id}/{action}", s.handleApprovalResolve)
		})
	})

	return r
}

func (s *Server) currentUser(r *http.Request) (domain.User, bool) {
	token := ""
	if auth := r.Header.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
		token = auth[7:]
	} else if cookie, err := r.Cookie("panel_session"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		return domain.User{}, false
	}
	username, ok := s.tokens[token]
	if !ok {
		return domain.User{}, false
	}
	user, ok := s.Users[username]
	return user, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.currentUser(r); ok {
		writeJSON(w, http.StatusOK, domain.SessionState{Authenticated: true, User: &user})
		return
	}
	writeJSON(w, http.StatusOK, domain.SessionState{Authenticated: false})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	password, ok := s.Accounts[creds.Username]
	if !ok || password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
		return
	}

	token := uuid.NewString()
	s.tokens[token] = creds.Username
	user := s.Users[creds.Username]
	http.SetCookie(w, &http.Cookie{Name: "panel_session", Value: token, Path: "/"})
	writeJSON(w, http.StatusOK, domain.LoginResult{Success: true, User: &user, Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if auth := r.Header.Get("Authorization"); len(auth) > 7 {
		delete(s.tokens, auth[7:])
	}
	if cookie, err := r.Cookie("panel_session"); err == nil {
		delete(s.tokens, cookie.Value)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailStats {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stats unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, s.StatsData)
}

// handleList serves the punishment directory. Hidden records are returned to
// everyone; suppressing them for anonymous viewers is the client's job.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	typ := domain.PunishmentType(chi.URLParam(r, "type"))
	if !typ.Valid() {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown punishment type"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListCalls[typ]++
	if s.FailLists {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "database offline"})
		return
	}

	player := r.URL.Query().Get("player")
	rule := r.URL.Query().Get("rule")
	var matched []domain.Punishment
	for _, p := range s.Punishments[typ] {
		if player != "" && p.PlayerName != player {
			continue
		}
		if rule != "" && p.Rule != rule {
			continue
		}
		matched = append(matched, p)
	}
	if matched == nil {
		matched = []domain.Punishment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"punishments": matched})
}

func (s *Server) handleEvidence(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	var body struct {
		EvidenceLink string `json:"evidence_link"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updatePunishment(chi.URLParam(r, "id"), func(p *domain.Punishment) { p.EvidenceLink = body.EvidenceLink }) {
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "punishment not found"})
}

func (s *Server) handleHide(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	var body struct {
		Hidden bool `json:"hidden"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updatePunishment(chi.URLParam(r, "id"), func(p *domain.Punishment) { p.Hidden = body.Hidden }) {
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "punishment not found"})
}

func (s *Server) updatePunishment(id string, apply func(*domain.Punishment)) bool {
	for typ, records := range s.Punishments {
		for i := range records {
			if records[i].ID == id {
				apply(&records[i])
				s.Punishments[typ] = records
				return true
			}
		}
	}
	return false
}

func (s *Server) handleChatList(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ChatCalls++

	messages := s.Chat
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit < len(messages) {
			messages = messages[len(messages)-limit:]
		}
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authed(w, r)
	if !ok {
		return
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Chat = append(s.Chat, domain.ChatMessage{
		StaffName: user.Username,
		Message:   body.Message,
		Timestamp: domain.Timestamp{Time: time.Now()},
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleStaffList(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StaffListCalls++

	users := s.Staff
	if users == nil {
		users = []domain.StaffUser{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleStaffAdd(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	var req domain.AddStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.Staff {
		if existing.Username == req.Username {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "username already exists"})
			return
		}
	}
	s.Staff = append(s.Staff, domain.StaffUser{Username: req.Username, Role: req.Role, UUID: uuid.NewString()})
	s.Accounts[req.Username] = req.Password
	s.Users[req.Username] = domain.User{Username: req.Username, Role: req.Role}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Staff member " + req.Username + " added"})
}

func (s *Server) handleStaffDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	username := chi.URLParam(r, "username")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls++
	for i, existing := range s.Staff {
		if existing.Username == username {
			s.Staff = append(s.Staff[:i], s.Staff[i+1:]...)
			delete(s.Accounts, username)
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "staff member not found"})
}

func (s *Server) handleApprovals(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ApprovalCalls++

	approvals := s.Approvals
	if approvals == nil {
		approvals = []domain.Approval{}
	}
	writeJSON(w, http.StatusOK, approvals)
}

func (s *Server) handleApprovalResolve(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	action := chi.URLParam(r, "action")
	if action != "approve" && action != "deny" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown action"})
		return
	}
	if r.URL.Query().Get("adminName") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "adminName required"})
		return
	}

	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, approval := range s.Approvals {
		if approval.ApprovalID == id {
			s.Approvals = append(s.Approvals[:i], s.Approvals[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "approval not found"})
}

// authed rejects unauthenticated requests with a 401 error body
func (s *Server) authed(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	s.mu.Lock()
	user, ok := s.currentUser(r)
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return domain.User{}, false
	}
	return user, true
}
