package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"schoolsite-backend/internal/infrastructure/logger"
	"schoolsite-backend/internal/usecase/upload"
)

type UploadHandler struct {
	uc  *upload.Usecase
	log *logger.Logger
}

func NewUploadHandler(uc *upload.Usecase, log *logger.Logger) *UploadHandler {
	return &UploadHandler{uc: uc, log: log.With("handler", "uploads")}
}

var errMissingFile = errors.New("missing multipart field \"file\"")

// formFile opens the "file" part. The caller closes the returned reader.
func formFile(c echo.Context) (upload.File, multipart.File, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return upload.File{}, nil, errMissingFile
	}
	f, err := fh.Open()
	if err != nil {
		return upload.File{}, nil, err
	}
	return upload.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, f, nil
}

func (h *UploadHandler) UploadDocument(c echo.Context) error {
	file, closer, err := formFile(c)
	if err != nil {
		if errors.Is(err, errMissingFile) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return respondError(c, h.log, err)
	}
	defer closer.Close()

	res, err := h.uc.UploadDocument(c.Request().Context(), file, c.FormValue("job_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, res)
}
