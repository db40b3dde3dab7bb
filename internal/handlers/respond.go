package handlers

import (
	"net/http"

	"github.com/dinepoll/server/internal/respond"
	"github.com/dinepoll/server/pkg/errors"
	"github.com/dinepoll/server/pkg/logger"
	"github.com/gin-gonic/gin"
)

func fail(c *gin.Context, status int, kind, content string) {
	respond.Fail(c, status, kind, content)
}

// failFromError maps a service error to the envelope. Ownership-predicate
// misses surface as 404 content_invalid so existence never leaks.
func failFromError(c *gin.Context, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		logger.Error("unformatted handler error", "error", err, "path", c.Request.URL.Path)
		fail(c, http.StatusInternalServerError, errors.ErrCodeServerError, "unknown")
		return
	}

	switch appErr.Code {
	case errors.ErrCodeNotFound:
		fail(c, http.StatusNotFound, errors.ErrCodeContentInvalid, appErr.Content)
	case errors.ErrCodeInvalidCredentials:
		fail(c, http.StatusUnauthorized, appErr.Code, appErr.Content)
	case errors.ErrCodeServerError:
		logger.Error("service failure", "error", err, "path", c.Request.URL.Path)
		fail(c, http.StatusInternalServerError, appErr.Code, appErr.Content)
	case errors.ErrCodeContentMissing, errors.ErrCodeContentInvalid, errors.ErrCodeContentDuplicate,
		errors.ErrCodeAccessDenied, errors.ErrCodeContentLimit, errors.ErrCodeNotImplemented:
		fail(c, http.StatusBadRequest, appErr.Code, appErr.Content)
	default:
		logger.Error("unknown error code", "error", err, "path", c.Request.URL.Path)
		fail(c, http.StatusInternalServerError, errors.ErrCodeServerError, "unknown")
	}
}
