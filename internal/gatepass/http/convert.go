package http

import (
	"net/url"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/domain"
	"github.com/aussiebroadwan/gatepass/pkg/gatepasssdk"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

func qrURL(publicURL, code string) string {
	return publicURL + "/codes/" + url.PathEscape(code) + "/qr.png"
}

func toInvitationResponse(inv domain.Invitation, publicURL string) gatepasssdk.InvitationResponse {
	return gatepasssdk.InvitationResponse{
		Code:       inv.Code,
		HolderName: inv.HolderName,
		State:      string(inv.State),
		IssuedAt:   inv.IssuedAt,
		IssuedBy:   inv.IssuedBy,
		UsedAt:     inv.UsedAt,
		UsedBy:     inv.UsedBy,
		QRURL:      qrURL(publicURL, inv.Code),
	}
}

func toInvitationResponses(invs []domain.Invitation, publicURL string) []gatepasssdk.InvitationResponse {
	out := make([]gatepasssdk.InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvitationResponse(inv, publicURL))
	}
	return out
}
