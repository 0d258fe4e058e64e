package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service-layer sentinel errors onto HTTP responses.
// Anything unrecognized becomes a generic 500 so internals never leak.
func HandleServiceError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		code, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, ErrAccountInactive),
		errors.Is(err, ErrForbidden):
		code, message = http.StatusForbidden, err.Error()
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrDuplicateServiceName),
		errors.Is(err, ErrOtpAlreadyUsed):
		code, message = http.StatusConflict, err.Error()
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrDentistNotFound),
		errors.Is(err, ErrVisitNotFound),
		errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrClinicProfileNotFound),
		errors.Is(err, ErrFaqNotFound),
		errors.Is(err, ErrGalleryImageNotFound):
		code, message = http.StatusNotFound, err.Error()
	case errors.Is(err, ErrPasswordNotSet),
		errors.Is(err, ErrOtpNotFound),
		errors.Is(err, ErrOtpExpired),
		errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrResetTokenInvalid),
		errors.Is(err, ErrMissingCustomPrice),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidDiscount),
		errors.Is(err, ErrInvalidInput):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrMailDelivery):
		code, message = http.StatusBadGateway, err.Error()
	default:
		log.Printf("unhandled service error: %v", err)
	}

	RespondError(c, code, message)
}
