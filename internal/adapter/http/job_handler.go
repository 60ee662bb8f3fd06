package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"schoolsite-backend/internal/domain/job"
	"schoolsite-backend/internal/infrastructure/logger"
	jobuc "schoolsite-backend/internal/usecase/job"
)

type JobHandler struct {
	uc  *jobuc.Usecase
	log *logger.Logger
}

func NewJobHandler(uc *jobuc.Usecase, log *logger.Logger) *JobHandler {
	return &JobHandler{uc: uc, log: log.With("handler", "jobs")}
}

type jobReq struct {
	Title               string   `json:"title"                validate:"required,max=200"`
	Location            string   `json:"location"             validate:"max=200"`
	EmploymentType      string   `json:"employment_type"      validate:"required,oneof=full_time part_time contract volunteer"`
	Status              string   `json:"status"               validate:"omitempty,oneof=draft active expired"`
	Description         string   `json:"description"`
	AboutOrganization   string   `json:"about_organization"`
	KeyResponsibilities []string `json:"key_responsibilities"`
	Qualifications      []string `json:"qualifications"`
	Requirements        []string `json:"requirements"`
	// Dates are calendar days, `YYYY-MM-DD`.
	PostedDate          string  `json:"posted_date"          validate:"omitempty,datetime=2006-01-02"`
	Deadline            string  `json:"deadline"             validate:"required,datetime=2006-01-02"`
	ApplicationEmail    string  `json:"application_email"    validate:"omitempty,email,max=255"`
	ApplicationWhatsapp *string `json:"application_whatsapp" validate:"omitempty,max=40"`
	Featured            bool    `json:"featured"`
	CategoryID          *string `json:"category_id"          validate:"omitempty,idseg"`
}

func (r jobReq) input() jobuc.JobInput {
	in := jobuc.JobInput{
		Title:               r.Title,
		Location:            r.Location,
		EmploymentType:      r.EmploymentType,
		Status:              r.Status,
		Description:         r.Description,
		AboutOrganization:   r.AboutOrganization,
		KeyResponsibilities: r.KeyResponsibilities,
		Qualifications:      r.Qualifications,
		Requirements:        r.Requirements,
		ApplicationEmail:    r.ApplicationEmail,
		ApplicationWhatsapp: r.ApplicationWhatsapp,
		Featured:            r.Featured,
		CategoryID:          r.CategoryID,
	}
	// formats were checked by the validator
	in.Deadline, _ = time.Parse(time.DateOnly, r.Deadline)
	if r.PostedDate != "" {
		pd, _ := time.Parse(time.DateOnly, r.PostedDate)
		in.PostedDate = &pd
	}
	return in
}

type categoryReq struct {
	Name        string  `json:"name"        validate:"required,max=120"`
	Description *string `json:"description"`
}

func (h *JobHandler) list(c echo.Context, admin bool) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "page and limit must be integers"})
	}
	res, err := h.uc.List(c.Request().Context(), jobuc.ListInput{
		Search:         c.QueryParam("search"),
		CategoryID:     c.QueryParam("category_id"),
		Location:       c.QueryParam("location"),
		EmploymentType: c.QueryParam("employment_type"),
		Status:         c.QueryParam("status"),
		Page:           page,
		Limit:          limit,
		Admin:          admin,
	})
	if err != nil {
		return badQuery(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *JobHandler) ListJobs(c echo.Context) error      { return h.list(c, false) }
func (h *JobHandler) AdminListJobs(c echo.Context) error { return h.list(c, true) }

func (h *JobHandler) GetJob(c echo.Context) error {
	j, err := h.uc.Get(c.Request().Context(), c.Param("idOrSlug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, j)
}

func (h *JobHandler) AdminGetJob(c echo.Context) error {
	j, err := h.uc.GetForAdmin(c.Request().Context(), c.Param("idOrSlug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, j)
}

func (h *JobHandler) Stats(c echo.Context) error {
	s, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *JobHandler) CreateJob(c echo.Context) error {
	var req jobReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	j, err := h.uc.Create(c.Request().Context(), req.input())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, j)
}

func (h *JobHandler) UpdateJob(c echo.Context) error {
	var req jobReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	j, err := h.uc.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, j)
}

func (h *JobHandler) ArchiveJob(c echo.Context) error {
	if err := h.uc.Archive(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *JobHandler) ListCategories(c echo.Context) error {
	cats, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	if cats == nil {
		cats = []job.Category{}
	}
	return c.JSON(http.StatusOK, map[string]any{"data": cats})
}

func (h *JobHandler) CreateCategory(c echo.Context) error {
	var req categoryReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	cat, err := h.uc.CreateCategory(c.Request().Context(), jobuc.CategoryInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, cat)
}
