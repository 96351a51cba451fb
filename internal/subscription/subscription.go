// Package subscription abstracts the "keep this page fresh" capability. The
// router consumes a Source without caring whether updates come from a local
// ticker or a push transport, so the chat page can move to server-sent events
// without touching page logic.
package subscription

import (
	"context"
	"sync"
	"time"
)

// Subscription is a live update feed that must be stopped on navigation
type Subscription interface {
	Stop()
}

// Source produces subscriptions that invoke fn once per update signal
type Source interface {
	Subscribe(ctx context.Context, fn func()) Subscription
}

// Poller signals on a fixed period using a local ticker
type Poller struct {
	Every time.Duration
}

type pollSub struct {
	stop chan struct{}
	once sync.Once
}

func (s *pollSub) Stop() {
	s.once.Do(func() { close(s.stop) })
}

// Subscribe starts the ticker. The subscription ends when Stop is called or
// the context is cancelled, whichever comes first.
func (p Poller) Subscribe(ctx context.Context, fn func()) Subscription {
	sub := &pollSub{stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(p.Every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return sub
}
