package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/domain"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/service"
	"github.com/aussiebroadwan/gatepass/pkg/gatepasssdk"
	"github.com/aussiebroadwan/gatepass/pkg/httpx"
)

type CodesHandler struct {
	Registry  *service.Registry
	PublicURL string
}

// HandleGet godoc
//
//	@Summary		Look Up Invitation
//	@Description	Return the record for a code without changing it.
//	@Tags			Codes
//	@Produce		json
//	@Param			code	path		string							true	"Invitation code"
//	@Success		200		{object}	gatepasssdk.InvitationResponse	"invitation record"
//	@Failure		404		{object}	gatepasssdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	gatepasssdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/codes/{code} [get].
func (h *CodesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Registry.Lookup(r.Context(), r.PathValue("code"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvitationResponse(inv, h.PublicURL))
}

// HandleList godoc
//
//	@Summary		List Invitations
//	@Description	List invitation records newest first, optionally filtered by state.
//	@Tags			Codes
//	@Produce		json
//	@Param			state	query		string						false	"issued or used"
//	@Param			limit	query		int							false	"maximum records (default 100, max 1000)"
//	@Success		200		{object}	gatepasssdk.ListResponse	"codes"
//	@Failure		400		{object}	gatepasssdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	gatepasssdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/codes [get].
func (h *CodesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpx.WriteJSON(w, http.StatusBadRequest, gatepasssdk.ErrorResponse{
				Error:            gatepasssdk.ErrorCodeInvalidRequest,
				ErrorDescription: "limit must be a non-negative integer",
			})
			return
		}
		limit = n
	}

	invs, err := h.Registry.List(r.Context(), domain.State(q.Get("state")), limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			httpx.WriteJSON(w, http.StatusBadRequest, gatepasssdk.ErrorResponse{
				Error:            gatepasssdk.ErrorCodeInvalidRequest,
				ErrorDescription: "state must be issued or used",
			})
		default:
			httpx.WriteJSON(w, http.StatusInternalServerError, gatepasssdk.ErrorResponse{
				Error:            gatepasssdk.ErrorCodeServerError,
				ErrorDescription: "Failed to list invitations",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatepasssdk.ListResponse{Codes: toInvitationResponses(invs, h.PublicURL)})
}

// HandleScans godoc
//
//	@Summary		Scan History
//	@Description	Every validation attempt recorded for a code, oldest first.
//	@Tags			Codes
//	@Produce		json
//	@Param			code	path		string							true	"Invitation code"
//	@Success		200		{object}	gatepasssdk.ScanHistoryResponse	"scans"
//	@Failure		500		{object}	gatepasssdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/codes/{code}/scans [get].
func (h *CodesHandler) HandleScans(w http.ResponseWriter, r *http.Request) {
	events, err := h.Registry.ScanHistory(r.Context(), r.PathValue("code"))
	if err != nil {
		httpx.WriteJSON(w, http.StatusInternalServerError, gatepasssdk.ErrorResponse{
			Error:            gatepasssdk.ErrorCodeServerError,
			ErrorDescription: "Failed to read scan history",
		})
		return
	}

	out := gatepasssdk.ScanHistoryResponse{Scans: make([]gatepasssdk.ScanEventResponse, 0, len(events))}
	for _, ev := range events {
		out.Scans = append(out.Scans, gatepasssdk.ScanEventResponse{
			Code:    ev.Code,
			Outcome: string(ev.Outcome),
			Station: ev.Station,
			At:      ev.At,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotFound) {
		httpx.WriteJSON(w, http.StatusNotFound, gatepasssdk.ErrorResponse{
			Error:            gatepasssdk.ErrorCodeNotFound,
			ErrorDescription: "Invitation not found",
		})
		return
	}
	httpx.WriteJSON(w, http.StatusInternalServerError, gatepasssdk.ErrorResponse{
		Error:            gatepasssdk.ErrorCodeServerError,
		ErrorDescription: "Failed to look up invitation",
	})
}
