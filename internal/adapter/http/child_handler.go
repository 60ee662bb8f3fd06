package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	mw "schoolsite-backend/internal/adapter/middleware"
	"schoolsite-backend/internal/domain/sponsorship"
	"schoolsite-backend/internal/infrastructure/logger"
	sponsorshipuc "schoolsite-backend/internal/usecase/sponsorship"
)

type ChildHandler struct {
	uc  *sponsorshipuc.Usecase
	log *logger.Logger
}

func NewChildHandler(uc *sponsorshipuc.Usecase, log *logger.Logger) *ChildHandler {
	return &ChildHandler{uc: uc, log: log.With("handler", "children")}
}

type childReq struct {
	FirstName    string  `json:"first_name"    validate:"required,max=100"`
	LastName     string  `json:"last_name"     validate:"max=100"`
	Bio          string  `json:"bio"           validate:"max=5000"`
	ClassYear    string  `json:"class_year"    validate:"max=40"`
	AmountNeeded float64 `json:"amount_needed" validate:"gte=0,dec2"`
}

func (r childReq) input() sponsorshipuc.ChildInput {
	return sponsorshipuc.ChildInput{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Bio:          r.Bio,
		ClassYear:    r.ClassYear,
		AmountNeeded: r.AmountNeeded,
	}
}

type manualSponsorshipReq struct {
	DonorName     string  `json:"donor_name"     validate:"max=200"`
	DonorEmail    string  `json:"donor_email"    validate:"omitempty,email,max=255"`
	Amount        float64 `json:"amount"         validate:"gt=0,dec2"`
	Currency      string  `json:"currency"       validate:"required,currency"`
	Frequency     string  `json:"frequency"      validate:"omitempty,oneof=one_time monthly yearly"`
	TransactionID string  `json:"transaction_id" validate:"max=128"`
}

func (h *ChildHandler) list(c echo.Context, includeArchived bool) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "page and limit must be integers"})
	}
	res, err := h.uc.ListChildren(c.Request().Context(), sponsorshipuc.ListInput{
		Status:          c.QueryParam("status"),
		IncludeArchived: includeArchived,
		Page:            page,
		Limit:           limit,
	})
	if err != nil {
		return badQuery(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ChildHandler) ListChildren(c echo.Context) error { return h.list(c, false) }

func (h *ChildHandler) AdminListChildren(c echo.Context) error {
	include := false
	if v := c.QueryParam("include_archived"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "include_archived must be a boolean"})
		}
		include = b
	}
	return h.list(c, include)
}

func (h *ChildHandler) GetChild(c echo.Context) error {
	ch, err := h.uc.GetChild(c.Request().Context(), c.Param("id"), false)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ch)
}

func (h *ChildHandler) CreateChild(c echo.Context) error {
	var req childReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	ch, err := h.uc.CreateChild(c.Request().Context(), req.input())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, ch)
}

func (h *ChildHandler) UpdateChild(c echo.Context) error {
	var req childReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	ch, err := h.uc.UpdateChild(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ch)
}

func (h *ChildHandler) ArchiveChild(c echo.Context) error {
	if err := h.uc.ArchiveChild(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ChildHandler) UploadPhoto(c echo.Context) error {
	file, closer, err := formFile(c)
	if err != nil {
		if errors.Is(err, errMissingFile) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return respondError(c, h.log, err)
	}
	defer closer.Close()

	ch, err := h.uc.SetPhoto(c.Request().Context(), c.Param("id"), file)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ch)
}

func (h *ChildHandler) Ledger(c echo.Context) error {
	rows, err := h.uc.Ledger(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if rows == nil {
		rows = []sponsorship.Sponsorship{}
	}
	return c.JSON(http.StatusOK, map[string]any{"data": rows})
}

func (h *ChildHandler) RecordManual(c echo.Context) error {
	var req manualSponsorshipReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	s, err := h.uc.RecordManual(c.Request().Context(), c.Param("id"), sponsorshipuc.ManualInput{
		DonorName:     req.DonorName,
		DonorEmail:    req.DonorEmail,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Frequency:     req.Frequency,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	if sess, ok := mw.SessionFrom(c); ok {
		h.log.Info("manual sponsorship recorded", "child_id", s.ChildID, "amount", s.Amount, "admin_id", sess.AdminID)
	}
	return c.JSON(http.StatusCreated, s)
}
