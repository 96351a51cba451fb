// Package notify implements the transient toast service. Each call creates an
// independent, independently-expiring entry; entries are never coalesced or
// queued.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/autopunish/panelctl/pkg/logger"
)

// Severity classifies a notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is one visible toast entry
type Notification struct {
	ID       string
	Message  string
	Severity Severity
	ShownAt  time.Time
}

// Service renders transient notifications and removes them after a fixed TTL
type Service struct {
	mu      sync.Mutex
	entries map[string]Notification
	order   []string
	ttl     time.Duration
	log     *logger.Logger

	// timer factory, swappable in tests
	after func(time.Duration, func()) *time.Timer
}

// NewService creates a notification service with the given display TTL
func NewService(ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		entries: make(map[string]Notification),
		ttl:     ttl,
		log:     log,
		after:   time.AfterFunc,
	}
}

// Show displays a message with the given severity and schedules its removal
func (s *Service) Show(message string, severity Severity) Notification {
	n := Notification{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
		ShownAt:  time.Now(),
	}

	s.mu.Lock()
	s.entries[n.ID] = n
	s.order = append(s.order, n.ID)
	s.mu.Unlock()

	s.log.WithFields(map[string]interface{}{
		"severity": string(severity),
		"id":       n.ID,
	}).Debug(message)

	s.after(s.ttl, func() { s.dismiss(n.ID) })
	return n
}

// Success is shorthand for Show with the success severity
func (s *Service) Success(message string) Notification {
	return s.Show(message, SeveritySuccess)
}

// Error is shorthand for Show with the error severity
func (s *Service) Error(message string) Notification {
	return s.Show(message, SeverityError)
}

// Active returns the currently visible notifications in display order
func (s *Service) Active() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.entries))
	for _, id := range s.order {
		if n, ok := s.entries[id]; ok {
			active = append(active, n)
		}
	}
	return active
}

func (s *Service) dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return
	}
	delete(s.entries, id)
	for i, candidate := range s.order {
		if candidate == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
