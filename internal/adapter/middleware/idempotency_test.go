package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"schoolsite-backend/internal/infrastructure/logger"
)

func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(Idempotency(rdb, ttl, logger.NewNop(), HeaderIdempotencyKey, HeaderWebhookEventID))
	e.POST("/api/applications", handler)
	e.GET("/api/applications", handler)
	return e
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func countingHandler(calls *int32, code int) echo.HandlerFunc {
	return func(c echo.Context) error {
		n := atomic.AddInt32(calls, 1)
		return c.JSON(code, map[string]any{"call": n})
	}
}

func Test_BypassWithoutKeyOrOnGET(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, time.Minute, countingHandler(&calls, http.StatusCreated))

	for i := 0; i < 2; i++ {
		if rec := doReq(t, e, http.MethodPost, "/api/applications", bytes.NewReader([]byte(`{}`)), nil); rec.Code != http.StatusCreated {
			t.Fatalf("want 201, got %d", rec.Code)
		}
	}
	rec := doReq(t, e, http.MethodGet, "/api/applications", nil, map[string]string{HeaderIdempotencyKey: "key-0001"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("GET => want handler status, got %d", rec.Code)
	}
	if calls != 3 {
		t.Fatalf("handler calls = %d, want 3", calls)
	}
}

func Test_InvalidKey(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, time.Minute, countingHandler(&calls, http.StatusCreated))
	rec := doReq(t, e, http.MethodPost, "/api/applications", bytes.NewReader([]byte(`{}`)), map[string]string{HeaderIdempotencyKey: "bad key"})
	if rec.Code != http.StatusBadRequest || calls != 0 {
		t.Fatalf("want 400 and no call, got %d calls=%d", rec.Code, calls)
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, 2*time.Minute, countingHandler(&calls, http.StatusCreated))
	h := map[string]string{HeaderIdempotencyKey: "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88"}

	rec1 := doReq(t, e, http.MethodPost, "/api/applications", bytes.NewReader([]byte(`{"x":1}`)), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d", rec1.Code)
	}
	rec2 := doReq(t, e, http.MethodPost, "/api/applications", bytes.NewReader([]byte(`{"x":1}`)), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d", rec2.Code)
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if rec2.Header().Get("Idempotent-Replay") != "true" {
		t.Fatal("replay header missing")
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
}

func Test_WebhookEventIDHeader(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, time.Minute, countingHandler(&calls, http.StatusOK))
	h := map[string]string{HeaderWebhookEventID: "evt_000000001"}
	for i := 0; i < 3; i++ {
		doReq(t, e, http.MethodPost, "/api/applications", bytes.NewReader([]byte(`{"e":1}`)), h)
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
}

func Test_ServerErrorIsNotStored(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, time.Minute, countingHandler(&calls, http.StatusInternalServerError))
	h := map[string]string{HeaderIdempotencyKey: "retry-me-123"}
	for i := 0; i < 2; i++ {
		if rec := doReq(t, e, http.MethodPost, "/api/applications", bytes.NewReader([]byte(`{}`)), h); rec.Code != http.StatusInternalServerError {
			t.Fatalf("want 500, got %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2", calls)
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, 2*time.Minute, countingHandler(&calls, http.StatusCreated))

	body := []byte(`{"x":1}`)
	key := buildKey(http.MethodPost, "/api/applications", "key-in-flight")
	if ok, err := provisionalSet(context.Background(), rdb, key, idempEntry{InProgress: true, BodySHA256: bodyHash(body), CreatedAt: nowUTC()}); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, "/api/applications", bytes.NewReader(body), map[string]string{HeaderIdempotencyKey: "key-in-flight"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameKey_DifferentBody(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, 2*time.Minute, countingHandler(&calls, http.StatusCreated))

	key := buildKey(http.MethodPost, "/api/applications", "key-reused")
	final := idempEntry{Code: http.StatusCreated, Body: []byte(`{"ok":true}`), BodySHA256: bodyHash([]byte(`{"x":1}`)), CreatedAt: nowUTC()}
	if err := saveFinal(context.Background(), rdb, key, final, 5*time.Minute); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	rec := doReq(t, e, http.MethodPost, "/api/applications", bytes.NewReader([]byte(`{"x":2}`)), map[string]string{HeaderIdempotencyKey: "key-reused"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same key => want 409, got %d", rec.Code)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()
	var calls int32
	e := setupEcho(rdb, time.Minute, countingHandler(&calls, http.StatusCreated))

	rec := doReq(t, e, http.MethodPost, "/api/applications", bytes.NewReader([]byte(`{}`)), map[string]string{HeaderIdempotencyKey: "key-0001"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
}
