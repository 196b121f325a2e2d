// Package http exposes the usecases over gin. Every handler answers with the
// response envelope and lets response.Error map failures to status codes.
package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"vidtube/internal/usecase"
	"vidtube/pkg/apperror"
	"vidtube/pkg/middleware"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

// requireUser returns the authenticated user id or writes a 401.
func requireUser(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		response.Error(c, apperror.Unauthorized("Unauthorized request"))
		return "", false
	}
	return userID, true
}

// bindJSON decodes the body into req. An empty body leaves req untouched so
// the usecase can report which fields are missing.
func bindJSON(c *gin.Context, req interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body").WithDetails(err.Error()))
		return false
	}
	return true
}

// formUpload opens the named multipart file. A missing file yields a nil
// upload and no error. The returned close func is always safe to call.
func formUpload(c *gin.Context, field string) (*usecase.Upload, func(), error) {
	noop := func() {}

	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, apperror.Validation("Invalid multipart form").WithDetails(err.Error())
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*usecase.Upload, func(), error) {
	src, err := header.Open()
	if err != nil {
		return nil, func() {}, apperror.Internal("Failed to process file", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upload := &usecase.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        src,
	}
	return upload, func() { _ = src.Close() }, nil
}

// queryInt parses an integer query parameter, returning 0 when it is absent
// or malformed so that the usecase applies its default.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return n
}
