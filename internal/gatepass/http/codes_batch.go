package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/service"
	"github.com/aussiebroadwan/gatepass/pkg/gatepasssdk"
	"github.com/aussiebroadwan/gatepass/pkg/httpx"
)

// MaxBatchSize bounds a single guest-list upload.
const MaxBatchSize = 1000

type IssueBatchHandler struct {
	Registry  *service.Registry
	PublicURL string
}

// ServeHTTP godoc
//
//	@Summary		Issue Invitations In Bulk
//	@Description	Create one invitation per holder name in a single transaction. If any name is invalid nothing is issued.
//	@Tags			Codes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatepasssdk.IssueBatchRequest	true	"Holders to invite"
//	@Success		201		{object}	gatepasssdk.IssueBatchResponse	"codes"
//	@Failure		400		{object}	gatepasssdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	gatepasssdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	gatepasssdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/codes/batch [post].
func (h *IssueBatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatepasssdk.IssueBatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, gatepasssdk.ErrorResponse{
			Error:            gatepasssdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	if len(req.HolderNames) > MaxBatchSize {
		httpx.WriteJSON(w, http.StatusBadRequest, gatepasssdk.ErrorResponse{
			Error:            gatepasssdk.ErrorCodeInvalidRequest,
			ErrorDescription: fmt.Sprintf("at most %d holder names per batch", MaxBatchSize),
		})
		return
	}

	invs, err := h.Registry.IssueBatch(ctx, req.HolderNames, httpx.StationFromContext(ctx))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			httpx.WriteJSON(w, http.StatusBadRequest, gatepasssdk.ErrorResponse{
				Error:            gatepasssdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
		default:
			httpx.WriteJSON(w, http.StatusInternalServerError, gatepasssdk.ErrorResponse{
				Error:            gatepasssdk.ErrorCodeServerError,
				ErrorDescription: "Failed to issue invitations",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, gatepasssdk.IssueBatchResponse{
		Codes: toInvitationResponses(invs, h.PublicURL),
	})
}
