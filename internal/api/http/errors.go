package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/PackStudio/internal/domain/archive"
	"github.com/GriffinCanCode/PackStudio/internal/domain/catalog"
	"github.com/GriffinCanCode/PackStudio/internal/domain/project"
	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/tracing"
)

// Error codes returned in the "code" field
const (
	CodeInvalidRequest     = "invalid_request"
	CodeInvalidName        = "invalid_name"
	CodeInvalidSpec        = "invalid_spec"
	CodeUnsupportedVersion = "unsupported_version"
	CodeInvalidPath        = "invalid_path"
	CodeContentTooLarge    = "content_too_large"
	CodeNotFound           = "not_found"
	CodePathNotFound       = "path_not_found"
	CodeDuplicateProject   = "duplicate_project"
	CodeNodeExists         = "node_exists"
	CodePathConflict       = "path_conflict"
	CodeCorruptArchive     = "corrupt_archive"
	CodeMissingMetadata    = "missing_metadata"
	CodeCorruptMetadata    = "corrupt_metadata"
	CodeInconsistent       = "inconsistent_archive"
	CodeWriteFailed        = "write_failed"
	CodeStorageUnavailable = "storage_unavailable"
	CodeDeleteFailed       = "delete_failed"
	CodeCanceled           = "canceled"
	CodeInternal           = "internal_error"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// First match wins. Project kinds come before the archive errors they wrap.
var errorMappings = []errorMapping{
	{project.ErrInvalidName, http.StatusBadRequest, CodeInvalidName},
	{project.ErrInvalidSpec, http.StatusBadRequest, CodeInvalidSpec},
	{catalog.ErrUnsupportedVersion, http.StatusBadRequest, CodeUnsupportedVersion},
	{structure.ErrInvalidPath, http.StatusBadRequest, CodeInvalidPath},
	{archive.ErrContentTooLarge, http.StatusRequestEntityTooLarge, CodeContentTooLarge},
	{project.ErrNotFound, http.StatusNotFound, CodeNotFound},
	{structure.ErrPathNotFound, http.StatusNotFound, CodePathNotFound},
	{project.ErrDuplicateProject, http.StatusConflict, CodeDuplicateProject},
	{structure.ErrNodeExists, http.StatusConflict, CodeNodeExists},
	{structure.ErrPathConflict, http.StatusConflict, CodePathConflict},
	{project.ErrDeleteFailed, http.StatusInternalServerError, CodeDeleteFailed},
	{archive.ErrCorruptArchive, http.StatusInternalServerError, CodeCorruptArchive},
	{archive.ErrMissingMetadata, http.StatusInternalServerError, CodeMissingMetadata},
	{archive.ErrCorruptMetadata, http.StatusInternalServerError, CodeCorruptMetadata},
	{archive.ErrInconsistentArchive, http.StatusInternalServerError, CodeInconsistent},
	{archive.ErrStorageUnavailable, http.StatusServiceUnavailable, CodeStorageUnavailable},
	{archive.ErrWriteFailed, http.StatusInternalServerError, CodeWriteFailed},
	{context.Canceled, http.StatusServiceUnavailable, CodeCanceled},
	{context.DeadlineExceeded, http.StatusServiceUnavailable, CodeCanceled},
}

// statusOf returns the HTTP status and code for err
func statusOf(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

// respondError writes {"error", "code"} and aborts the request
func (h *Handlers) respondError(c *gin.Context, err error) {
	status, code := statusOf(err)
	if status >= http.StatusInternalServerError {
		tracing.WithTrace(c.Request.Context(), h.logger).Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("code", code),
			zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{
		"error": err.Error(),
		"code":  code,
	})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error": msg,
		"code":  CodeInvalidRequest,
	})
}
