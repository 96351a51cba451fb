package subscription

import (
	"bufio"
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/autopunish/panelctl/pkg/logger"
)

// SSEStream signals whenever the backend emits a server-sent event on the
// configured endpoint. Comment frames (heartbeats) are ignored. If the stream
// drops it reconnects after a short pause; updates are best-effort.
type SSEStream struct {
	URL    string
	Client *http.Client
	Log    *logger.Logger

	// Backoff between reconnect attempts; defaults to 5s.
	Backoff time.Duration
}

type sseSub struct {
	cancel context.CancelFunc
	once   sync.Once
}

func (s *sseSub) Stop() {
	s.once.Do(s.cancel)
}

// Subscribe opens the event stream and invokes fn once per data event
func (s SSEStream) Subscribe(ctx context.Context, fn func()) Subscription {
	streamCtx, cancel := context.WithCancel(ctx)
	sub := &sseSub{cancel: cancel}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	backoff := s.Backoff
	if backoff <= 0 {
		backoff = 5 * time.Second
	}

	go func() {
		for {
			if err := s.stream(streamCtx, client, fn); err != nil && streamCtx.Err() == nil {
				s.Log.WithError(err).Warn("Event stream interrupted, reconnecting")
			}
			select {
			case <-streamCtx.Done():
				return
			case <-time.After(backoff):
			}
		}
	}()

	return sub
}

func (s SSEStream) stream(ctx context.Context, client *http.Client, fn func()) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data:") {
			fn()
		}
	}
	return scanner.Err()
}
