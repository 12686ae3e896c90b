package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/service"
	"github.com/aussiebroadwan/gatepass/pkg/gatepasssdk"
	"github.com/aussiebroadwan/gatepass/pkg/httpx"
)

type IssueHandler struct {
	Registry  *service.Registry
	PublicURL string
}

// ServeHTTP godoc
//
//	@Summary		Issue Invitation
//	@Description	Create a new one-time invitation code for a holder. The response links to the QR image of the code.
//	@Tags			Codes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatepasssdk.IssueRequest		true	"Holder to invite"
//	@Success		201		{object}	gatepasssdk.InvitationResponse	"code, holderName, issuedAt, qrUrl"
//	@Failure		400		{object}	gatepasssdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	gatepasssdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	gatepasssdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/codes [post].
func (h *IssueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatepasssdk.IssueRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, gatepasssdk.ErrorResponse{
			Error:            gatepasssdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	inv, err := h.Registry.Issue(ctx, req.HolderName, httpx.StationFromContext(ctx))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			httpx.WriteJSON(w, http.StatusBadRequest, gatepasssdk.ErrorResponse{
				Error:            gatepasssdk.ErrorCodeInvalidRequest,
				ErrorDescription: "holderName must be non-empty and at most 200 characters",
			})
		default:
			httpx.WriteJSON(w, http.StatusInternalServerError, gatepasssdk.ErrorResponse{
				Error:            gatepasssdk.ErrorCodeServerError,
				ErrorDescription: "Failed to issue invitation",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInvitationResponse(inv, h.PublicURL))
}
