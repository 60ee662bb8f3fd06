package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"schoolsite-backend/internal/infrastructure/logger"
)

const (
	// How long we hold the "in-progress" lock before it must be refreshed by finishing the handler.
	provisionalLockTTL = 60 * time.Second
	storeTimeout       = 2 * time.Second

	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderWebhookEventID = "X-Webhook-Event-Id"
)

// ---- Data types ----
type idempEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	CreatedAt  time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// Idempotency replays the first response for a repeated key on mutating requests.
// The key is read from the first of headers that is set; requests without one pass through.
// Responses with a 5xx status are not stored so the client may retry.
func Idempotency(rdb *redis.Client, ttl time.Duration, log *logger.Logger, headers ...string) echo.MiddlewareFunc {
	if len(headers) == 0 {
		headers = []string{HeaderIdempotencyKey}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			var clientKey string
			for _, h := range headers {
				if clientKey = strings.TrimSpace(req.Header.Get(h)); clientKey != "" {
					break
				}
			}
			if clientKey == "" {
				return next(c)
			}
			if !validKey(clientKey) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid idempotency key"})
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			key := buildKey(method, c.Path(), clientKey)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			ok, err := provisionalSet(ctx, rdb, key, idempEntry{InProgress: true, BodySHA256: bhash, CreatedAt: nowUTC()})
			if err != nil {
				log.Error("idempotency store unavailable", "error", err)
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !ok {
				cur, errLoad := loadEntry(ctx, rdb, key)
				if errLoad != nil {
					log.Warn("idempotency entry not loaded", "key", key, "error", errLoad)
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return c.JSON(http.StatusConflict, map[string]string{"error": "idempotency key reused with different body"})
				}
				if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
					c.Response().Header().Set("Idempotent-Replay", "true")
					return c.Blob(cur.Code, echo.MIMEApplicationJSONCharsetUTF8, cur.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			sctx, scancel := context.WithTimeout(context.WithoutCancel(req.Context()), storeTimeout)
			defer scancel()
			if rec.code >= http.StatusInternalServerError {
				if err := rdb.Del(sctx, key).Err(); err != nil {
					log.Warn("idempotency lock not released", "key", key, "error", err)
				}
				return nil
			}
			final := idempEntry{Code: rec.code, Body: rec.buf.Bytes(), BodySHA256: bhash, CreatedAt: nowUTC()}
			if err := saveFinal(sctx, rdb, key, final, ttl); err != nil {
				log.Warn("idempotency result not saved", "key", key, "error", err)
			}
			return nil
		}
	}
}
