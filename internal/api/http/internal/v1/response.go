package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nitt-hospital/backend/internal/service"
	"github.com/nitt-hospital/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
}

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

// serviceErrorResponse maps service errors to the public error codes.
// Anything unrecognised is logged and reported as 500.
func serviceErrorResponse(c *gin.Context, op string, err error) {
	var dispatchErr *service.DispatchError

	switch {
	case errors.Is(err, service.ErrInvalidCode), errors.Is(err, service.ErrCodeExpired):
		errorResponse(c, http.StatusBadRequest, OtpInvalidCode)
	case errors.Is(err, service.ErrTooManyAttempts):
		errorResponse(c, http.StatusTooManyRequests, OtpTooManyAttemptsCode)
	case errors.Is(err, service.ErrResendTooSoon):
		errorResponse(c, http.StatusTooManyRequests, OtpResendTooSoonCode)
	case errors.As(err, &dispatchErr):
		errorResponse(c, http.StatusInternalServerError, OtpDispatchFailedCode)
	case errors.Is(err, service.ErrOtpNotFound):
		errorResponse(c, http.StatusNotFound, OtpNotFoundCode)
	case errors.Is(err, service.ErrUserAlreadyExist):
		errorResponse(c, http.StatusConflict, UserAlreadyExistsCode)
	case errors.Is(err, service.ErrInvalidCredentials):
		errorResponse(c, http.StatusUnauthorized, InvalidCredentialsCode)
	case errors.Is(err, service.ErrUnauthorized):
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
	case errors.Is(err, service.ErrInvalidRequest):
		errorResponse(c, http.StatusBadRequest, InvalidRequestCode)
	default:
		logger.Error(op+" failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
	}
}

func validationErrorResponse(c *gin.Context, err error) {
	response := ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: ValidationErrorMessage,
		Errors:       []ValidationError{},
	}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		response.Errors = lo.Map(verr, func(ferr validator.FieldError, _ int) ValidationError {
			return ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		})
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "otpcode":
		return "must be a 6 digit code"
	case "oneof":
		return fmt.Sprintf("must be one of: %v", value)
	case "min":
		return fmt.Sprintf("must be at least %v characters", value)
	case "max":
		return fmt.Sprintf("must be at most %v characters", value)
	}
	return tag
}
