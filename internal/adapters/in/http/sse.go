package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"tableside/internal/core/domain/model/kernel"
)

// Events handles GET /api/v1/events - the server-sent event stream.
//
// A ?table=<id> parameter declares the subscriber as a viewer of that table
// and counts it into the presence snapshot; staff subscribe without one and
// see everything anyway since every event goes to every subscriber. The
// first event on any new stream is the current presence snapshot.
func (s *Server) Events(ctx echo.Context) error {
	// presenceKey is the canonical lowercase id form, so case variants of
	// the same table never split into separate presence entries.
	var presenceKey string
	if tableParam := ctx.QueryParam("table"); tableParam == "" {
		if _, err := s.requireKitchen(ctx); err != nil {
			return s.respondError(ctx, err)
		}
	} else {
		tableID, err := kernel.UUIDFromString(tableParam)
		if err != nil {
			return badRequest(ctx, "invalid table id")
		}
		if _, err = s.requireTableAccess(ctx, tableID); err != nil {
			return s.respondError(ctx, err)
		}
		presenceKey = tableID.String()
	}

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set("Cache-Control", "no-cache")
	response.Header().Set("Connection", "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	sub := s.bus.Subscribe(presenceKey)
	defer sub.Close()

	heartbeat := s.registerStream()
	defer s.unregisterStream(heartbeat)

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil

		case event, ok := <-sub.C():
			if !ok {
				return nil
			}
			payload, err := json.Marshal(event)
			if err != nil {
				s.log.Error("marshalling event", "error", err)
				continue
			}
			if _, err = fmt.Fprintf(response, "event: %s\ndata: %s\n\n", event.Kind, payload); err != nil {
				return nil
			}
			response.Flush()

		case <-heartbeat:
			// SSE comment line; keeps idle connections from being reaped
			// by proxies without waking client-side event handlers.
			if _, err := fmt.Fprint(response, ": heartbeat\n\n"); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}

func (s *Server) registerStream() chan struct{} {
	heartbeat := make(chan struct{}, 1)
	s.mu.Lock()
	s.streams[heartbeat] = struct{}{}
	s.mu.Unlock()
	return heartbeat
}

func (s *Server) unregisterStream(heartbeat chan struct{}) {
	s.mu.Lock()
	delete(s.streams, heartbeat)
	s.mu.Unlock()
}

// Heartbeat pokes every live event stream to emit a keep-alive comment.
// Non-blocking: a stream already due for a heartbeat is not queued twice.
func (s *Server) Heartbeat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for heartbeat := range s.streams {
		select {
		case heartbeat <- struct{}{}:
		default:
		}
	}
}

// StreamCount reports the number of connected event streams.
func (s *Server) StreamCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.streams)
}
