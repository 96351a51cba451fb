package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopunish/panelctl/pkg/logger"
)

// fakeTimers captures scheduled dismissals so tests can fire them on demand
type fakeTimers struct {
	callbacks []func()
}

func (f *fakeTimers) after(_ time.Duration, fn func()) *time.Timer {
	f.callbacks = append(f.callbacks, fn)
	return time.NewTimer(time.Hour)
}

func newTestService() (*Service, *fakeTimers) {
	s := NewService(5*time.Second, logger.NewNop())
	timers := &fakeTimers{}
	s.after = timers.after
	return s, timers
}

func TestShowAndExpire(t *testing.T) {
	s, timers := newTestService()

	n := s.Success("Login successful")
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, SeveritySuccess, n.Severity)

	active := s.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Login successful", active[0].Message)

	require.Len(t, timers.callbacks, 1)
	timers.callbacks[0]()
	assert.Empty(t, s.Active())
}

func TestEntriesExpireIndependently(t *testing.T) {
	s, timers := newTestService()

	first := s.Error("Failed to save evidence link")
	s.Success("Punishment hidden successfully")
	third := s.Success("Staff member added successfully")
	require.Len(t, timers.callbacks, 3)

	// Dismiss the middle entry; the others keep their display order.
	timers.callbacks[1]()

	active := s.Active()
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, third.ID, active[1].ID)
}

func TestRepeatedMessagesStayIndependent(t *testing.T) {
	s, _ := newTestService()

	a := s.Error("Message cannot be empty")
	b := s.Error("Message cannot be empty")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, s.Active(), 2)
}

func TestDismissTwiceIsHarmless(t *testing.T) {
	s, timers := newTestService()

	s.Success("done")
	require.Len(t, timers.callbacks, 1)
	timers.callbacks[0]()
	timers.callbacks[0]()
	assert.Empty(t, s.Active())
}
