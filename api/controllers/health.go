package controllers

import (
	"context"
	"net/http"

	"github.com/craftpress/printshop-backend/api/responses"
	"github.com/craftpress/printshop-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Health reports liveness of the service and its backing stores.
func Health(db pinger, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		components := map[string]string{
			"database": "ok",
			"redis":    "ok",
		}
		healthy := true

		if db == nil || db.Ping(ctx) != nil {
			components["database"] = "unavailable"
			healthy = false
		}
		if cache == nil || cache.Ping(ctx) != nil {
			components["redis"] = "unavailable"
			healthy = false
		}

		status := http.StatusOK
		state := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
			if logg != nil {
				logg.Warn(ctx, "health.degraded")
			}
		}

		responses.WriteSuccessStatus(w, status, map[string]any{
			"status":     state,
			"components": components,
		})
	}
}
