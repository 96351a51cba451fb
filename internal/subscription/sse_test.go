package subscription

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopunish/panelctl/pkg/logger"
)

func TestSSEStreamSignalsPerEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)

		// A comment heartbeat must not signal.
		fmt.Fprint(w, ": heartbeat\n\n")
		flusher.Flush()

		for i := 0; i < 3; i++ {
			fmt.Fprint(w, "data: update\n\n")
			flusher.Flush()
		}
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int64
	stream := SSEStream{URL: srv.URL, Log: logger.NewNop(), Backoff: 10 * time.Millisecond}
	sub := stream.Subscribe(ctx, func() { fired.Add(1) })
	defer sub.Stop()

	require.Eventually(t, func() bool { return fired.Load() >= 3 },
		3*time.Second, 5*time.Millisecond)
}

func TestSSEStreamStopEndsSignals(t *testing.T) {
	events := make(chan struct{}, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for {
			select {
			case <-r.Context().Done():
				return
			case <-events:
				fmt.Fprint(w, "data: update\n\n")
				flusher.Flush()
			}
		}
	}))
	defer srv.Close()

	var fired atomic.Int64
	stream := SSEStream{URL: srv.URL, Log: logger.NewNop(), Backoff: 10 * time.Millisecond}
	sub := stream.Subscribe(context.Background(), func() { fired.Add(1) })

	events <- struct{}{}
	require.Eventually(t, func() bool { return fired.Load() == 1 },
		3*time.Second, 5*time.Millisecond)

	sub.Stop()
	time.Sleep(30 * time.Millisecond)
	events <- struct{}{}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), fired.Load())
}

func TestSSEStreamReconnects(t *testing.T) {
	var connections atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		connections.Add(1)
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: update\n\n")
		// Returning drops the connection; the stream should come back.
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int64
	stream := SSEStream{URL: srv.URL, Log: logger.NewNop(), Backoff: 5 * time.Millisecond}
	sub := stream.Subscribe(ctx, func() { fired.Add(1) })
	defer sub.Stop()

	require.Eventually(t, func() bool { return connections.Load() >= 2 && fired.Load() >= 2 },
		3*time.Second, 5*time.Millisecond)
}
