package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmynk/amigo/internal/countdown"
	"github.com/mmynk/amigo/internal/metrics"
	"github.com/mmynk/amigo/internal/middleware"
)

// countdown streams the time left until the event as Server-Sent Events, one per tick.
// The stream ends at zero or when the client goes away.
func (h *Handler) countdown(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	metrics.CountdownStreams.Inc()
	defer metrics.CountdownStreams.Dec()

	emit := func(left countdown.Remaining) error {
		data, err := json.Marshal(left)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		return rc.Flush()
	}

	target := h.party.Event().Next(h.now())
	first := countdown.Until(h.now(), target)
	if err := emit(first); err != nil || first.Zero() {
		return
	}

	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()

	err := countdown.Watch(r.Context(), ticker.C, h.now, target, emit)
	if err != nil && !errors.Is(err, r.Context().Err()) {
		slog.Debug("Countdown stream ended", "origin", middleware.GetOrigin(r.Context()), "error", err)
	}
}
