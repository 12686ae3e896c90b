package http

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/service"
	"github.com/aussiebroadwan/gatepass/pkg/gatepasssdk"
	"github.com/aussiebroadwan/gatepass/pkg/httpx"
	"github.com/aussiebroadwan/gatepass/pkg/qrx"
	"github.com/aussiebroadwan/gatepass/pkg/slogx"
)

type QRHandler struct {
	Registry *service.Registry

	// Now stamps download filenames, overridable in tests.
	Now func() time.Time
}

// ServeHTTP godoc
//
//	@Summary		Invitation QR Code
//	@Description	Render the code of an issued invitation as a QR PNG. With download=1 the response is an attachment named after the holder.
//	@Tags			Codes
//	@Produce		png
//	@Param			code		path		string						true	"Invitation code"
//	@Param			size		query		int							false	"edge length in pixels (64-2048, default 320)"
//	@Param			download	query		bool						false	"serve as attachment"
//	@Success		200			{file}		file						"PNG image"
//	@Failure		404			{object}	gatepasssdk.ErrorResponse	"error, error_description"
//	@Failure		500			{object}	gatepasssdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/codes/{code}/qr.png [get].
func (h *QRHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	inv, err := h.Registry.Lookup(ctx, r.PathValue("code"))
	if err != nil {
		writeLookupError(w, err)
		return
	}

	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	img, err := qrx.PNG(inv.Code, size)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to render QR code", slog.Any("error", err))
		httpx.WriteJSON(w, http.StatusInternalServerError, gatepasssdk.ErrorResponse{
			Error:            gatepasssdk.ErrorCodeServerError,
			ErrorDescription: "Failed to render QR code",
		})
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	if download, _ := strconv.ParseBool(r.URL.Query().Get("download")); download {
		now := time.Now
		if h.Now != nil {
			now = h.Now
		}
		w.Header().Set("Content-Disposition",
			mime.FormatMediaType("attachment", map[string]string{"filename": qrx.Filename(inv.HolderName, now())}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
