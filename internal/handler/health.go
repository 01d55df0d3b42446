package handler

import (
	"context"
	"net/http"
	"time"

	"tablepos/internal/infra"
	"tablepos/internal/repository"

	"github.com/gin-gonic/gin"
)

// Health reports storage reachability and the mirror breaker state.
// The register keeps working from memory when storage is down, so a failed
// ping degrades the response to 503 without affecting other routes.
func Health(store repository.BundleStore, breaker func() infra.CBState, driver string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storage := "connected"
		if store.Ping(ctx) != nil {
			storage = "error"
		}
		state := breaker()

		status := http.StatusOK
		if storage != "connected" || state == infra.CBOpen {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"driver":  driver,
			"storage": storage,
			"breaker": state.String(),
		})
	}
}
