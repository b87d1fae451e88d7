package codes

import (
	"net/http"
	"overseer/core"
)

// Of error code carried by err
func Of(err error) core.ErrorCode {
	return core.ErrorCodeOf(err)
}

// Status http status of an error code
func Status(code core.ErrorCode) int {
	switch code {
	case core.ErrInvalidArgument, core.ErrInvalidAddress, core.ErrUnderflow, core.ErrOverflow:
		return http.StatusBadRequest
	case core.ErrUnauthorized:
		return http.StatusUnauthorized
	case core.ErrInsufficientCollateral, core.ErrExceedsLimit:
		return http.StatusUnprocessableEntity
	case core.ErrPriceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
