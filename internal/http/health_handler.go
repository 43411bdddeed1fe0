package httpapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

type healthResponse struct {
	Status string `json:"status"`
}

// handleHealth reports whether the database answers a ping.
func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), a.opts.PingTimeout)
	defer cancel()

	if err := a.db.PingContext(ctx); err != nil {
		a.logger.Warn("health check failed", zap.Error(err))
		msg := "Database unavailable"
		if a.opts.ExposeErrors {
			msg = err.Error()
		}
		writeError(w, http.StatusServiceUnavailable, msg)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
