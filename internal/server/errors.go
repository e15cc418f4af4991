package server

import (
	"errors"
	"net/http"

	bookingdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/booking/domain"
	memberdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/member/domain"
	notificationdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/notification/domain"
	partnerdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/partner/domain"
	"github.com/gin-gonic/gin"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNoSession      = errors.New("no_merchant_session")
)

// ErrorHandlingMiddleware translates the last handler error into a JSON body.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

// AbortWithError records err for the error middleware and stops the chain.
func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: err.Error()}
	case errors.Is(err, bookingdomain.ErrInvalidTransition):
		return http.StatusConflict, errorPayload{Type: "invalid_transition", Message: err.Error()}
	case errors.Is(err, ErrNoSession):
		return http.StatusUnauthorized, errorPayload{Type: "unauthorized", Message: "no active merchant session"}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{Type: "validation_error", Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal server error"}
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, bookingdomain.ErrNotFound),
		errors.Is(err, bookingdomain.ErrOfferNotFound),
		errors.Is(err, memberdomain.ErrNotFound),
		errors.Is(err, partnerdomain.ErrNotFound),
		errors.Is(err, notificationdomain.ErrNotFound):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, bookingdomain.ErrInvalidAmount),
		errors.Is(err, bookingdomain.ErrInvalidDetails),
		errors.Is(err, bookingdomain.ErrInvalidUser),
		errors.Is(err, bookingdomain.ErrInvalidPartner),
		errors.Is(err, memberdomain.ErrInvalidName),
		errors.Is(err, memberdomain.ErrInvalidEmail),
		errors.Is(err, memberdomain.ErrInvalidPoints),
		errors.Is(err, notificationdomain.ErrMissingAddress):
		return true
	default:
		return false
	}
}
