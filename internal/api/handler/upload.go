package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guda/guda-backend/internal/core/ports"
)

// Multipart field names for uploads.
const (
	fieldProfilePic   = "profilePic"
	fieldDocument     = "document"
	fieldDocumentType = "documentType"
)

// formFile opens the named multipart file under a body size limit. A missing
// file, or a request that is not multipart at all, yields an empty Upload so
// the service reports it only after the caller is authenticated.
func formFile(c echo.Context, field string, limit int64) (ports.Upload, func(), error) {
	noop := func() {}
	if limit > 0 {
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, limit)
	}

	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return ports.Upload{}, noop, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "upload exceeds size limit")
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return ports.Upload{}, noop, nil
		default:
			return ports.Upload{}, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
		}
	}

	f, err := fh.Open()
	if err != nil {
		return ports.Upload{}, noop, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	return ports.Upload{Filename: fh.Filename, Content: f}, func() { _ = f.Close() }, nil
}
