// Package syncagent implements the client-side subscriber to the event
// stream. The agent holds exactly one subscription at a time and reacts to
// events by invalidating local state, never by copying server state: an
// order event marks the order cache stale, a pin rotation for the own table
// tears the session down, a presence event replaces the presence snapshot
// wholesale.
package syncagent

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"tableside/internal/core/domain/events"
)

// Resource names a locally cached resource the agent can mark stale.
type Resource string

const (
	ResourceOrders   Resource = "orders"
	ResourceMenu     Resource = "menu"
	ResourceSettings Resource = "settings"
	ResourceTables   Resource = "tables"
)

func allResources() []Resource {
	return []Resource{ResourceOrders, ResourceMenu, ResourceSettings, ResourceTables}
}

// Reactor receives the agent's side effects. Implementations belong to the
// client application: a UI cache, a local store, a logout routine.
type Reactor interface {
	// TeardownSession is called when the server revoked the client's own
	// table session (PIN rotated or table deleted).
	TeardownSession(reason string)

	// MarkStale flags one cached resource for refetch.
	MarkStale(resource Resource)

	// ReplacePresence swaps the entire cached presence snapshot.
	ReplacePresence(presence map[string]int)
}

const defaultBackoff = 2 * time.Second

// Config carries the agent's connection parameters.
type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:8080".
	BaseURL string

	// TableID is the client's own table, declared at subscribe time for
	// presence counting. Empty for staff clients.
	TableID string

	// Client issues the stream requests. Must carry whatever session cookie
	// the server expects. Defaults to http.DefaultClient.
	Client *http.Client

	// Backoff is the fixed delay between reconnect attempts.
	// Defaults to 2 seconds.
	Backoff time.Duration
}

// Agent is the reconnecting event stream subscriber.
type Agent struct {
	baseURL string
	client  *http.Client
	backoff time.Duration
	reactor Reactor
	log     *slog.Logger

	mu        sync.Mutex
	tableID   string
	connected bool
}

// NewAgent creates a sync agent. Call Run to start it.
func NewAgent(cfg Config, reactor Reactor, log *slog.Logger) *Agent {
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	return &Agent{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		backoff: backoff,
		reactor: reactor,
		log:     log.With("component", "syncagent"),
		tableID: cfg.TableID,
	}
}

// SetTableID changes the table declared on the next (re)connection. The
// current subscription keeps its old declaration; presence tracking is
// connection-scoped on the server.
func (a *Agent) SetTableID(tableID string) {
	a.mu.Lock()
	a.tableID = tableID
	a.mu.Unlock()
}

// Run subscribes and dispatches events until ctx is cancelled. On transport
// failure it reconnects after the fixed backoff, re-declaring the current
// table id. Events missed while disconnected are unknowable, so every
// successful reconnect marks all cached resources stale once.
func (a *Agent) Run(ctx context.Context) error {
	for {
		if err := a.stream(ctx); err != nil && ctx.Err() == nil {
			a.log.Warn("event stream disconnected", "error", err, "retry_in", a.backoff)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(a.backoff):
		}
	}
}

func (a *Agent) stream(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.streamURL(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("event stream rejected: status %d", resp.StatusCode)
	}

	a.afterConnect()

	reader := bufio.NewReader(resp.Body)
	var data strings.Builder
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case strings.HasPrefix(line, ":"):
			// Heartbeat comment, no domain meaning.
		case strings.HasPrefix(line, "data: "):
			data.WriteString(strings.TrimPrefix(line, "data: "))
		case line == "":
			if data.Len() > 0 {
				a.dispatch(data.String())
				data.Reset()
			}
		}
	}
}

func (a *Agent) streamURL() string {
	a.mu.Lock()
	tableID := a.tableID
	a.mu.Unlock()

	url := a.baseURL + "/api/v1/events"
	if tableID != "" {
		url += "?table=" + tableID
	}
	return url
}

// afterConnect marks everything stale on every connection after the first.
// The first connection needs no invalidation: the client has not cached
// anything it could have missed updates for.
func (a *Agent) afterConnect() {
	a.mu.Lock()
	reconnected := a.connected
	a.connected = true
	a.mu.Unlock()

	if reconnected {
		a.log.Info("reconnected, invalidating all cached resources")
		for _, resource := range allResources() {
			a.reactor.MarkStale(resource)
		}
	}
}

func (a *Agent) dispatch(payload string) {
	var event events.Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		a.log.Warn("discarding malformed event", "error", err)
		return
	}

	a.mu.Lock()
	ownTable := a.tableID
	a.mu.Unlock()

	switch event.Kind {
	case events.KindPinChanged:
		if ownTable != "" && event.TableID == ownTable {
			a.reactor.TeardownSession("table PIN was changed")
		}

	case events.KindTableDeleted:
		if ownTable != "" && event.TableID == ownTable {
			a.reactor.TeardownSession("table was deleted")
		}
		a.reactor.MarkStale(ResourceTables)

	case events.KindTableAdded, events.KindTableUpdated:
		a.reactor.MarkStale(ResourceTables)

	case events.KindOrderCreated, events.KindOrderUpdated,
		events.KindOrderCancelled, events.KindOrderDeleted:
		a.reactor.MarkStale(ResourceOrders)

	case events.KindMenuChanged:
		a.reactor.MarkStale(ResourceMenu)

	case events.KindSettingsChanged:
		a.reactor.MarkStale(ResourceSettings)

	case events.KindTablePresence:
		a.reactor.ReplacePresence(event.Presence)

	default:
		// Unknown kinds are ignorable per the event contract.
	}
}
