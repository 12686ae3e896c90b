package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/store"
	"github.com/aussiebroadwan/gatepass/pkg/gatepasssdk"
	"github.com/aussiebroadwan/gatepass/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe. Reports 503 when the database cannot be reached, since no scan can be adjudicated then.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	gatepasssdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	gatepasssdk.HealthResponse	"status, uptime, version, checks"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &gatepasssdk.HealthChecks{Database: "ok"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, gatepasssdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Truncate(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
