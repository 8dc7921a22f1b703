package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses by their kind.
// Unclassified errors are logged and reported as 500 without detail.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch apperror.KindOf(err) {
	case apperror.ErrNotFound:
		NotFound(w, err.Error())
	case apperror.ErrForbidden:
		Forbidden(w, err.Error())
	case apperror.ErrUnauthenticated:
		Unauthorized(w, err.Error())
	case apperror.ErrConflict:
		Conflict(w, err.Error())
	case apperror.ErrInvalidRange:
		InvalidRange(w, err.Error())
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
