package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"schoolsite-backend/internal/infrastructure/logger"
)

const (
	HeaderWebhookSignature = "X-Webhook-Signature"
	HeaderWebhookTimestamp = "X-Webhook-Timestamp"

	// Allowed sender/server clock skew for the webhook timestamp (in UTC).
	maxClockSkew = 10 * time.Minute
)

// Sign returns the header value for body sent at timestamp.
func Sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// WebhookSignature rejects requests whose HMAC or timestamp does not check out.
// The body is restored for the handler.
func WebhookSignature(secret string, log *logger.Logger) echo.MiddlewareFunc {
	unauthorized := func(c echo.Context, reason string) error {
		log.Warn("webhook rejected", "reason", reason, "ip", c.RealIP())
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid signature"})
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rawTS := strings.TrimSpace(req.Header.Get(HeaderWebhookTimestamp))
			ts, err := parseTimestamp(rawTS)
			if err != nil {
				return unauthorized(c, err.Error())
			}
			now := nowUTC()
			if ts.Before(now.Add(-maxClockSkew)) || ts.After(now.Add(maxClockSkew)) {
				return unauthorized(c, "timestamp skew")
			}

			got := strings.TrimSpace(req.Header.Get(HeaderWebhookSignature))
			if !strings.HasPrefix(got, "sha256=") {
				return unauthorized(c, "missing signature")
			}

			var body []byte
			if req.Body != nil {
				body, err = io.ReadAll(req.Body)
				if err != nil {
					return unauthorized(c, "unreadable body")
				}
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))

			want := Sign(secret, rawTS, body)
			if !hmac.Equal([]byte(strings.ToLower(got)), []byte(want)) {
				return unauthorized(c, "signature mismatch")
			}
			return next(c)
		}
	}
}
