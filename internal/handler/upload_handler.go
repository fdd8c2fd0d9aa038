package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"mapup/internal/logging"
	"mapup/internal/notice"
	"mapup/internal/service"
)

// Notices raised by the upload endpoint.
const (
	MsgUploadSucceeded = "File Uploaded Successfully!"
	MsgUploadFailed    = "File upload failed. Please try again."
	MsgNoFile          = "Please choose a file to upload."
)

// UploadHandler accepts dataset files from the sidebar.
type UploadHandler struct {
	upload service.UploadService
	log    logging.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(upload service.UploadService, log logging.Logger) *UploadHandler {
	return &UploadHandler{upload: upload, log: log}
}

// Upload forwards the posted file to the backend, waits for the stock data
// to reload and returns to the page the upload came from.
func (h *UploadHandler) Upload(c echo.Context) error {
	target := back(c, "/")

	fh, err := c.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			h.log.Warn(c.Request().Context(), "read upload", "error", err)
		}
		return redirectWith(c, target, notice.Blocking(MsgNoFile))
	}
	src, err := fh.Open()
	if err != nil {
		h.log.Error(c.Request().Context(), "open upload", "filename", fh.Filename, "error", err)
		return redirectWith(c, target, notice.Blocking(MsgUploadFailed))
	}
	defer src.Close()

	_, err = h.upload.Upload(c.Request().Context(), fh.Filename, src)
	switch {
	case errors.Is(err, service.ErrStaleData):
		return redirectWith(c, target, notice.Toast(MsgUploadSucceeded), notice.Blocking(msgStocksUnavailable))
	case err != nil:
		return redirectWith(c, target, notice.Blocking(MsgUploadFailed))
	}
	return redirectWith(c, target, notice.Toast(MsgUploadSucceeded))
}
