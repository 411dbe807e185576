package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	ping        func(ctx context.Context) error
	startupTime time.Time
}

func newHealthHandler(ping func(ctx context.Context) error, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		ping:        ping,
		startupTime: startupTime,
	}
}

type healthResponse struct {
	Status        string    `json:"status"`
	Database      string    `json:"database"`
	StartedAt     time.Time `json:"startedAt"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
}

// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := healthResponse{
			Status:        "ok",
			Database:      "ok",
			StartedAt:     h.startupTime.UTC(),
			UptimeSeconds: int64(time.Since(h.startupTime).Seconds()),
		}

		status := http.StatusOK
		if h.ping == nil {
			response.Database = "unknown"
		} else {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := h.ping(ctx); err != nil {
				h.logger.Warn().Err(err).Msg("database ping failed")
				response.Status = "degraded"
				response.Database = "unreachable"
				status = http.StatusServiceUnavailable
			}
		}

		h.responder.WriteJSONWithStatus(w, status, response)
	}
}
