package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// keepAliveInterval spaces SSE comment lines so idle connections are not
// reaped by intermediaries.
const keepAliveInterval = 25 * time.Second

// Events handles GET /api/v1/events. It streams learner-state change
// notifications as Server-Sent Events until the client disconnects. Each
// event names the language and the state file that changed; the client
// re-fetches whatever it cares about.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteProblem(w, r, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	events, cancel := h.hub.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			slog.Debug("event stream closed",
				"component", "api",
				"remote_ip", r.RemoteAddr,
			)
			return
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case event := <-events:
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: state-changed\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
