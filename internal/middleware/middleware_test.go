package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/amigo/internal/metrics"
)

func echoOrigin() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetOrigin(r.Context())))
	})
}

func TestOrigin(t *testing.T) {
	h := Origin(echoOrigin())

	t.Run("assigns a new origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, OriginCookie, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, cookies[0].Value, rec.Body.String())
		_, err := uuid.Parse(cookies[0].Value)
		assert.NoError(t, err)
	})

	t.Run("keeps an existing origin", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: OriginCookie, Value: id})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Empty(t, rec.Result().Cookies())
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("replaces a malformed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: OriginCookie, Value: "../../etc"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Len(t, rec.Result().Cookies(), 1)
		assert.NotEqual(t, "../../etc", rec.Body.String())
	})
}

func TestGetOrigin(t *testing.T) {
	assert.Equal(t, "", GetOrigin(context.Background()))
	assert.Equal(t, "abc", GetOrigin(WithOrigin(context.Background(), "abc")))
}

func TestLogging(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /teapot/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	mux.HandleFunc("GET /stream", func(w http.ResponseWriter, r *http.Request) {
		_, ok := w.(http.Flusher)
		assert.True(t, ok)
		_, _ = w.Write([]byte("data"))
	})
	h := Logging(mux)

	before := testutil.CollectAndCount(metrics.HTTPRequests)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot/1", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))
	assert.Equal(t, "data", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, before+3, testutil.CollectAndCount(metrics.HTTPRequests))
}
