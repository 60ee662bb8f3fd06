package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DonationConfig is the public campaign wiring for the donation widget.
type DonationConfig struct {
	CampaignID            string `json:"campaign_id"`
	SponsorshipCampaignID string `json:"sponsorship_campaign_id"`
	WidgetURL             string `json:"widget_url"`
}

type Handler struct {
	donations DonationConfig
}

func NewHandler(donations DonationConfig) *Handler { return &Handler{donations: donations} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *Handler) DonationConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.donations)
}

// pageParams reads the optional page and limit query values.
func pageParams(c echo.Context) (page, limit int, err error) {
	err = echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		BindError()
	return page, limit, err
}
