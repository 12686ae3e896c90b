package http

import (
	"net/http"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/domain"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/service"
	"github.com/aussiebroadwan/gatepass/pkg/gatepasssdk"
	"github.com/aussiebroadwan/gatepass/pkg/httpx"
)

type RedeemHandler struct {
	Registry *service.Registry
}

// ServeHTTP godoc
//
//	@Summary		Redeem Invitation
//	@Description	Present a scanned code at the door. Exactly one redemption of an issued code is granted; later attempts report already_used with the original holder and time. Codes that were never issued report unknown.
//	@Description
//	@Description	A 500 response means the scan could not be adjudicated and entry must be refused.
//	@Tags			Codes
//	@Produce		json
//	@Param			code	path		string						true	"Invitation code"
//	@Success		200		{object}	gatepasssdk.RedeemResponse	"outcome, holderName, usedAt, message"
//	@Failure		401		{object}	gatepasssdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	gatepasssdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/codes/{code}/redeem [post].
func (h *RedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := h.Registry.Validate(ctx, r.PathValue("code"), httpx.StationFromContext(ctx))
	if err != nil {
		httpx.WriteJSON(w, http.StatusInternalServerError, gatepasssdk.ErrorResponse{
			Error:            gatepasssdk.ErrorCodeServerError,
			ErrorDescription: "Could not validate code, refuse entry and retry",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRedeemResponse(res))
}

func toRedeemResponse(res domain.ValidationResult) gatepasssdk.RedeemResponse {
	out := gatepasssdk.RedeemResponse{Outcome: string(res.Outcome)}
	switch res.Outcome {
	case domain.OutcomeGranted:
		out.HolderName = res.HolderName
		out.UsedAt = res.UsedAt
		out.Message = "Welcome " + res.HolderName + "!"
	case domain.OutcomeAlreadyUsed:
		out.HolderName = res.HolderName
		out.UsedAt = res.UsedAt
		out.Message = "Already used for " + res.HolderName
	default:
		out.Outcome = string(domain.OutcomeUnknown)
		out.Message = "Invalid code"
	}
	return out
}
