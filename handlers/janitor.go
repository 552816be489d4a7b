package handlers

import (
	"context"
	"time"
)

// Sweep ends expired sessions together with their previews and evicts idle
// previews.
func (h *Handler) Sweep() {
	expired := h.Sessions.Sweep()
	dismissed := 0
	for _, id := range expired {
		dismissed += h.Previews.DismissSession(id)
	}
	evicted := h.Previews.Sweep()

	if len(expired) > 0 || dismissed > 0 || evicted > 0 {
		h.Log.Info().
			Int("sessions_expired", len(expired)).
			Int("previews_dismissed", dismissed).
			Int("previews_evicted", evicted).
			Msg("swept stale state")
	}
}

// RunJanitor calls Sweep every interval until ctx is done.
func (h *Handler) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Sweep()
		}
	}
}
