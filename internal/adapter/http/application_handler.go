package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "schoolsite-backend/internal/adapter/middleware"
	"schoolsite-backend/internal/infrastructure/logger"
	appuc "schoolsite-backend/internal/usecase/application"
)

type ApplicationHandler struct {
	uc  *appuc.Usecase
	log *logger.Logger
}

func NewApplicationHandler(uc *appuc.Usecase, log *logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, log: log.With("handler", "applications")}
}

type submitApplicationReq struct {
	JobID                string   `json:"job_id"                 validate:"required,idseg"`
	FirstName            string   `json:"first_name"             validate:"required,max=100"`
	LastName             string   `json:"last_name"              validate:"required,max=100"`
	Email                string   `json:"email"                  validate:"required,email,max=255"`
	Phone                *string  `json:"phone"                  validate:"omitempty,max=40"`
	Whatsapp             *string  `json:"whatsapp"               validate:"omitempty,max=40"`
	CVURL                string   `json:"cv_url"                 validate:"required"`
	CVFilename           string   `json:"cv_filename"            validate:"max=255"`
	CoverLetterURL       string   `json:"cover_letter_url"       validate:"required_without=CoverLetter"`
	CoverLetter          string   `json:"cover_letter"`
	AcademicDocumentsURL []string `json:"academic_documents_url"`
	// Accepted for compatibility and ignored: new applications are always pending.
	Status string `json:"status"`
}

type reviewReq struct {
	Status     *string `json:"status"      validate:"omitempty,oneof=pending reviewing shortlisted rejected hired"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=5000"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	r := c.Request()
	a, err := h.uc.Submit(r.Context(), appuc.SubmitInput{
		JobID:                req.JobID,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		Phone:                req.Phone,
		Whatsapp:             req.Whatsapp,
		CVURL:                req.CVURL,
		CVFilename:           req.CVFilename,
		CoverLetterURL:       req.CoverLetterURL,
		CoverLetter:          req.CoverLetter,
		AcademicDocumentsURL: req.AcademicDocumentsURL,
		IPAddress:            mw.AuditIP(r),
		UserAgent:            r.UserAgent(),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *ApplicationHandler) List(c echo.Context) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "page and limit must be integers"})
	}
	res, err := h.uc.List(c.Request().Context(), appuc.ListInput{
		JobID:  c.QueryParam("job_id"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return badQuery(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	a, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ApplicationHandler) Review(c echo.Context) error {
	var req reviewReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	a, err := h.uc.Review(c.Request().Context(), c.Param("id"), appuc.ReviewInput{Status: req.Status, AdminNotes: req.AdminNotes})
	if err != nil {
		return respondError(c, h.log, err)
	}
	if s, ok := mw.SessionFrom(c); ok {
		h.log.Info("application reviewed", "application_id", a.ID, "status", a.Status, "admin_id", s.AdminID)
	}
	return c.JSON(http.StatusOK, a)
}
