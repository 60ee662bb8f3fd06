package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"schoolsite-backend/internal/infrastructure/logger"
	sponsorshipuc "schoolsite-backend/internal/usecase/sponsorship"
)

type WebhookHandler struct {
	uc  *sponsorshipuc.Usecase
	log *logger.Logger
}

func NewWebhookHandler(uc *sponsorshipuc.Usecase, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{uc: uc, log: log.With("handler", "webhooks")}
}

// Donation records a completed payment from the donation platform.
func (h *WebhookHandler) Donation(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return invalidBody(c)
	}
	ev, err := sponsorshipuc.ParseDonationEvent(body)
	if err != nil {
		h.log.Warn("donation payload rejected", "error", err)
		return respondError(c, h.log, err)
	}
	res, err := h.uc.RecordDonation(c.Request().Context(), ev)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
