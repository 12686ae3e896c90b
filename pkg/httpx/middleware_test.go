package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatepass/pkg/httpx"
	"github.com/aussiebroadwan/gatepass/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("first"), mw("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func newVerifier(t *testing.T) *jwtx.HS256 {
	t.Helper()
	v, err := jwtx.NewHS256([]byte(strings.Repeat("s", jwtx.MinSecretLength)), "gatepass")
	require.NoError(t, err)
	return v
}

func TestAuthnAndScopes(t *testing.T) {
	v := newVerifier(t)

	var station string
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		station = httpx.StationFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}), httpx.AuthnMiddleware(v), httpx.RequireAnyScope("codes:redeem"))

	serve := func(auth string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/codes/x/redeem", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing token", func(t *testing.T) {
		rec := serve("")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")

		var body httpx.ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "invalid_token", body.Error)
	})

	t.Run("bad token", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, serve("Bearer nope").Code)
	})

	t.Run("wrong scope", func(t *testing.T) {
		tok, _, err := v.Mint("desk", []string{"codes:issue"}, time.Hour)
		require.NoError(t, err)

		rec := serve("Bearer " + tok)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "insufficient_scope")
	})

	t.Run("granted", func(t *testing.T) {
		tok, _, err := v.Mint("door-1", []string{"codes:redeem"}, time.Hour)
		require.NoError(t, err)

		require.Equal(t, http.StatusNoContent, serve("Bearer "+tok).Code)
		require.Equal(t, "door-1", station)
	})
}

func TestParseSpaceDelimitedFields(t *testing.T) {
	require.Nil(t, httpx.ParseSpaceDelimitedFields("  , "))
	require.Equal(t, []string{"codes:issue", "codes:redeem"}, httpx.ParseSpaceDelimitedFields("codes:issue, codes:redeem"))
}

func TestWriteJSONDisablesCaching(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]string{"ok": "yes"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())
}
