package http

import (
	"net/http"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/service"
	"github.com/aussiebroadwan/gatepass/pkg/gatepasssdk"
	"github.com/aussiebroadwan/gatepass/pkg/httpx"
)

// StatsHandler godoc
//
//	@Summary		Door Statistics
//	@Description	Count of invitations ever issued, how many were used, and how many remain.
//	@Tags			Codes
//	@Produce		json
//	@Success		200	{object}	gatepasssdk.StatsResponse	"issuedCount, usedCount, remaining"
//	@Failure		500	{object}	gatepasssdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/stats [get].
func StatsHandler(registry *service.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := registry.Stats(r.Context())
		if err != nil {
			httpx.WriteJSON(w, http.StatusInternalServerError, gatepasssdk.ErrorResponse{
				Error:            gatepasssdk.ErrorCodeServerError,
				ErrorDescription: "Failed to read statistics",
			})
			return
		}

		httpx.WriteJSON(w, http.StatusOK, gatepasssdk.StatsResponse{
			IssuedCount: stats.IssuedCount,
			UsedCount:   stats.UsedCount,
			Remaining:   stats.Remaining(),
		})
	}
}
