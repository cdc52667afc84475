package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/logger"
)

// HandleAPIError maps a service error onto the transport status code
// and error envelope. Every handler funnels its failures through here
// so equivalent faults always produce the same status.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := dto.ErrorCodeInternalServer

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrSamePassword):
		status = http.StatusBadRequest
		code = dto.ErrorCodeValidationFailed
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrWrongPassword):
		status = http.StatusUnauthorized
		code = dto.ErrorCodeInvalidCredentials
	case errors.Is(err, apperrors.ErrUnauthenticated):
		status = http.StatusUnauthorized
		code = dto.ErrorCodeUnauthorized
	case errors.Is(err, apperrors.ErrTokenExpired):
		status = http.StatusForbidden
		code = dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid):
		status = http.StatusForbidden
		code = dto.ErrorCodeInvalidToken
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		code = dto.ErrorCodeForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		code = dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrDuplicateUser),
		errors.Is(err, apperrors.ErrDuplicateCourse):
		status = http.StatusConflict
		code = dto.ErrorCodeResourceAlreadyExists
	case errors.Is(err, apperrors.ErrDependencyFailed):
		status = http.StatusBadGateway
		code = dto.ErrorCodeExternalServiceError
	}

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, "something went wrong")))
		return
	}

	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, apperrors.Message(err))))
}
