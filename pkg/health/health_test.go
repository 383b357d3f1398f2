package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) statusResponse {
	t.Helper()
	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestLiveEndpoint_NoChecks(t *testing.T) {
	h := New()

	rec := httptest.NewRecorder()
	h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeStatus(t, rec).Status)
}

func TestLiveEndpoint_FailingCheck(t *testing.T) {
	h := New()
	h.AddLivenessCheck("broken", time.Second, func(context.Context) error {
		return errors.New("something is wrong")
	})

	rec := httptest.NewRecorder()
	h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeStatus(t, rec)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "something is wrong", resp.Checks["broken"])
}

func TestReadyEndpoint_NotReadyUntilSet(t *testing.T) {
	h := New()

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	h.SetReady(true)
	rec = httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyEndpoint_DrainOnShutdown(t *testing.T) {
	h := New()
	h.SetReady(true)
	require.True(t, h.IsReady())

	h.SetReady(false)

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadyEndpoint_FailingCheckOverridesReady(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.AddReadinessCheck("postgres", time.Second, func(context.Context) error {
		return errors.New("connection refused")
	})

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "connection refused", decodeStatus(t, rec).Checks["postgres"])
}

func TestCheckTimeout(t *testing.T) {
	h := New()
	h.AddReadinessCheck("slow", 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	h.SetReady(true)

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(100000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}
