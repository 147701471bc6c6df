package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/teamtasks/internal/domain"
)

// Error reasons that are not parent-assignment rejections.
const (
	reasonNotFound      = "not_found"
	reasonInvalid       = "invalid"
	reasonDuplicate     = "duplicate"
	reasonDataIntegrity = "data_integrity"
	reasonInternal      = "internal"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

var validationErrors = []error{
	domain.ErrEmptyName,
	domain.ErrEmptyCode,
	domain.ErrInvalidProgress,
	domain.ErrInvalidDate,
	domain.ErrDeadlineBeforeStart,
	domain.ErrNoFieldsToUpdate,
	domain.ErrParentConflict,
	domain.ErrAssigneeConflict,
}

// classify maps an error to its HTTP status and reason code.
func classify(err error) (int, string) {
	var rej *domain.ReparentError
	if errors.As(err, &rej) {
		if rej.Reason == domain.RejectCorruptHierarchy {
			return http.StatusConflict, string(rej.Reason)
		}
		return http.StatusUnprocessableEntity, string(rej.Reason)
	}
	switch {
	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrPersonNotFound):
		return http.StatusNotFound, reasonNotFound
	case errors.Is(err, domain.ErrDuplicateProject):
		return http.StatusConflict, reasonDuplicate
	case errors.Is(err, domain.ErrDataIntegrity):
		return http.StatusInternalServerError, reasonDataIntegrity
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return http.StatusBadRequest, reasonInvalid
		}
	}
	return http.StatusInternalServerError, reasonInternal
}

// fail aborts the request with the JSON error body for err.
func fail(c *gin.Context, err error) {
	status, reason := classify(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error(), Reason: reason})
}

// badRequest aborts the request for malformed input.
func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg, Reason: reasonInvalid})
}
