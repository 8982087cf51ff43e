package http

import (
	"errors"
	"net/http"

	"orderdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps an application error onto the API error body:
// validation 422 with reason, not found 404, invalid input 400, store
// unavailable 503 (retryable), permission denied and anything else 500.
func writeError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	resp := errorResponse{Message: err.Error(), Kind: string(kind)}

	switch kind {
	case errs.KindValidation:
		resp.Code = http.StatusUnprocessableEntity
		var v *errs.ValidationError
		if errors.As(err, &v) {
			resp.Reason = string(v.Reason)
		}
	case errs.KindNotFound:
		resp.Code = http.StatusNotFound
	case errs.KindInvalid:
		resp.Code = http.StatusBadRequest
	case errs.KindUnavailable:
		resp.Code = http.StatusServiceUnavailable
		resp.Retryable = true
	case errs.KindPermissionDenied:
		resp.Code = http.StatusInternalServerError
	default:
		resp.Code = http.StatusInternalServerError
		resp.Message = "internal error"
		resp.Kind = string(errs.KindInternal)
	}

	return c.JSON(resp.Code, resp)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
		Kind:    string(errs.KindInvalid),
	})
}
