package http

import (
	"net/http"
	"time"

	"linguabook-backend/internal/store"
)

// StatusHandler answers health checks and reports whether the remote store
// is reachable or the server is running on its local mirror.
type StatusHandler struct {
	prober  store.Prober
	backend string
	started time.Time
}

func NewStatusHandler(prober store.Prober, backend string) *StatusHandler {
	return &StatusHandler{
		prober:  prober,
		backend: backend,
		started: time.Now().UTC(),
	}
}

func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	online := h.prober.Probe(r.Context())
	mode := "online"
	if !online {
		mode = "offline"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"store_backend":  h.backend,
		"store_mode":     mode,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
