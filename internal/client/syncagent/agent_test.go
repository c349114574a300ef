package syncagent_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableside/internal/client/syncagent"
	"tableside/internal/core/domain/events"
)

type recordingReactor struct {
	mu        sync.Mutex
	teardowns []string
	stale     []syncagent.Resource
	presence  map[string]int
}

func (r *recordingReactor) TeardownSession(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teardowns = append(r.teardowns, reason)
}

func (r *recordingReactor) MarkStale(resource syncagent.Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale = append(r.stale, resource)
}

func (r *recordingReactor) ReplacePresence(presence map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presence = presence
}

func (r *recordingReactor) teardownCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.teardowns)
}

func (r *recordingReactor) staleCount(resource syncagent.Resource) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, got := range r.stale {
		if got == resource {
			count++
		}
	}
	return count
}

func (r *recordingReactor) lastPresence() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presence
}

func writeEvent(t *testing.T, w http.ResponseWriter, event events.Event) {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Kind, payload)
	require.NoError(t, err)
	w.(http.Flusher).Flush()
}

func startAgent(t *testing.T, serverURL, tableID string, reactor *recordingReactor) context.CancelFunc {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	agent := syncagent.NewAgent(syncagent.Config{
		BaseURL: serverURL,
		TableID: tableID,
		Backoff: 10 * time.Millisecond,
	}, reactor, slog.New(slog.DiscardHandler))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = agent.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func Test_Agent_DispatchesReactions(t *testing.T) {
	reactor := &recordingReactor{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)

		writeEvent(t, w, events.OrderCreated("order-1", "table-9", "queued"))
		writeEvent(t, w, events.MenuChanged())
		writeEvent(t, w, events.SettingsChanged())
		writeEvent(t, w, events.TableUpdated("table-9"))
		writeEvent(t, w, events.TablePresence(map[string]int{"table-5": 2}))

		<-r.Context().Done()
	}))
	// Registered before startAgent so the agent's LIFO cleanup cancels it
	// first; Close blocks until the streaming handler returns.
	t.Cleanup(server.Close)

	startAgent(t, server.URL, "table-5", reactor)

	require.Eventually(t, func() bool {
		return reactor.lastPresence() != nil
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, reactor.staleCount(syncagent.ResourceOrders))
	assert.Equal(t, 1, reactor.staleCount(syncagent.ResourceMenu))
	assert.Equal(t, 1, reactor.staleCount(syncagent.ResourceSettings))
	assert.Equal(t, 1, reactor.staleCount(syncagent.ResourceTables))
	assert.Equal(t, map[string]int{"table-5": 2}, reactor.lastPresence())
	assert.Equal(t, 0, reactor.teardownCount())
}

func Test_Agent_PinChangeForOwnTableTearsSessionDown(t *testing.T) {
	reactor := &recordingReactor{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)

		// Another table's rotation first; must not eject this client.
		writeEvent(t, w, events.PinChanged("table-2", 7))
		writeEvent(t, w, events.PinChanged("table-5", 3))

		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	startAgent(t, server.URL, "table-5", reactor)

	require.Eventually(t, func() bool {
		return reactor.teardownCount() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"table PIN was changed"}, reactor.teardowns)
}

func Test_Agent_TableDeletion(t *testing.T) {
	reactor := &recordingReactor{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)

		writeEvent(t, w, events.TableDeleted("table-2"))
		writeEvent(t, w, events.TableDeleted("table-5"))

		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	startAgent(t, server.URL, "table-5", reactor)

	require.Eventually(t, func() bool {
		return reactor.teardownCount() == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"table was deleted"}, reactor.teardowns)
	// Both deletions leave the table list stale, own or not.
	assert.Equal(t, 2, reactor.staleCount(syncagent.ResourceTables))
}

func Test_Agent_IgnoresHeartbeatComments(t *testing.T) {
	reactor := &recordingReactor{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)

		_, err := fmt.Fprint(w, ": heartbeat\n\n")
		require.NoError(t, err)
		w.(http.Flusher).Flush()
		writeEvent(t, w, events.MenuChanged())

		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	startAgent(t, server.URL, "", reactor)

	require.Eventually(t, func() bool {
		return reactor.staleCount(syncagent.ResourceMenu) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, reactor.teardownCount())
}

func Test_Agent_ReconnectRedeclaresTableAndInvalidatesAll(t *testing.T) {
	reactor := &recordingReactor{}
	var connections atomic.Int32
	tableParams := make(chan string, 8)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		connection := connections.Add(1)
		tableParams <- r.URL.Query().Get("table")

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		writeEvent(t, w, events.TablePresence(map[string]int{"table-5": 1}))

		// Drop the first connection to force a reconnect.
		if connection == 1 {
			return
		}
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	startAgent(t, server.URL, "table-5", reactor)

	require.Eventually(t, func() bool {
		return connections.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, "table-5", <-tableParams)
	assert.Equal(t, "table-5", <-tableParams)

	require.Eventually(t, func() bool {
		return reactor.staleCount(syncagent.ResourceOrders) >= 1
	}, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, reactor.staleCount(syncagent.ResourceMenu), 1)
	assert.GreaterOrEqual(t, reactor.staleCount(syncagent.ResourceSettings), 1)
	assert.GreaterOrEqual(t, reactor.staleCount(syncagent.ResourceTables), 1)
}
