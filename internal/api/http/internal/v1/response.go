package v1

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/internal/service"
	"github.com/barangay-connect/backend/pkg/logger"
	pkgValidator "github.com/barangay-connect/backend/pkg/validator"
)

func errorResponse(c *gin.Context, code ErrorCode) {
	c.AbortWithStatusJSON(http.StatusBadRequest, getErrorStruct(code))
}

func errorResponseWithStatus(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

// validationErrorResponse answers request binding failures and form field errors alike.
// Anything else is reported as a malformed body.
func validationErrorResponse(c *gin.Context, err error) {
	var out []ValidationError

	var verr validator.ValidationErrors
	var ferr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		out = make([]ValidationError, len(verr))
		for i, fe := range verr {
			out[i] = ValidationError{fe.Field(), msgForTag(fe.Tag(), fe.Param())}
		}
	case errors.As(err, &ferr):
		out = make([]ValidationError, 0, len(ferr.Fields))
		for field, msg := range ferr.Fields {
			out = append(out, ValidationError{string(field), msg})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].FieldKey < out[j].FieldKey })
	default:
		errorResponse(c, InvalidRequestBodyCode)
		return
	}

	response := ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: ValidationErrorMessage,
	}
	response.Errors = out
	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

func msgForTag(tag string, value string) string {
	return pkgValidator.Message(tag, value)
}

// serviceErrorResponse maps an error from the service layer onto a status and error code.
func serviceErrorResponse(c *gin.Context, err error) {
	var ferr *domain.ValidationError
	if errors.As(err, &ferr) {
		validationErrorResponse(c, err)
		return
	}

	switch {
	case errors.Is(err, service.ErrRegistrationNotFound):
		errorResponseWithStatus(c, http.StatusNotFound, RegistrationNotFoundCode)
	case errors.Is(err, service.ErrAccountNotFound):
		errorResponseWithStatus(c, http.StatusNotFound, AccountNotFoundCode)
	case errors.Is(err, service.ErrAccountAlreadyExist):
		submissionErrorResponse(c, http.StatusConflict, AccountAlreadyExistsCode, err)
	case errors.Is(err, service.ErrInvalidBirthDate), errors.Is(err, service.ErrMissingPresentAddress):
		submissionErrorResponse(c, http.StatusBadRequest, SubmissionFailedCode, err)
	case errors.Is(err, service.ErrUnknownRegistrationKind):
		errorResponse(c, UnknownRegistrationKindCode)
	case errors.Is(err, service.ErrUnknownChannel):
		errorResponse(c, UnknownChannelCode)
	case errors.Is(err, domain.ErrUnknownStep):
		errorResponse(c, UnknownStepCode)
	case errors.Is(err, domain.ErrCameraUnavailable):
		errorResponse(c, CameraUnavailableCode)
	case errors.Is(err, domain.ErrStageNotActive):
		errorResponseWithStatus(c, http.StatusConflict, StageNotActiveCode)
	case errors.Is(err, domain.ErrSequenceFinished):
		errorResponseWithStatus(c, http.StatusConflict, SequenceFinishedCode)
	case errors.Is(err, domain.ErrStepIncomplete):
		errorResponseWithStatus(c, http.StatusConflict, StepIncompleteCode)
	case errors.Is(err, domain.ErrStepNotSkippable):
		errorResponseWithStatus(c, http.StatusConflict, StepNotSkippableCode)
	case errors.Is(err, domain.ErrNotReadyToSubmit):
		errorResponseWithStatus(c, http.StatusConflict, NotReadyToSubmitCode)
	case errors.Is(err, domain.ErrNoActiveOTPSession):
		errorResponseWithStatus(c, http.StatusConflict, NoActiveOTPSessionCode)
	case errors.Is(err, domain.ErrCaptureInProgress):
		errorResponseWithStatus(c, http.StatusConflict, CaptureInProgressCode)
	case errors.Is(err, domain.ErrMatchTimeout):
		errorResponseWithStatus(c, http.StatusGatewayTimeout, MatchTimeoutCode)
	case errors.Is(err, domain.ErrDispatch):
		logger.Warn("upstream dispatch failed", zap.Error(err))
		errorResponseWithStatus(c, http.StatusBadGateway, DispatchFailedCode)
	default:
		var serr *domain.SubmissionError
		if errors.As(err, &serr) {
			logger.Error("registration submission failed", zap.Error(err))
			submissionErrorResponse(c, http.StatusInternalServerError, SubmissionFailedCode, err)
			return
		}
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, getErrorStruct(UnknownErrorCode))
	}
}

func submissionErrorResponse(c *gin.Context, status int, code ErrorCode, err error) {
	e := getErrorStruct(code)
	response := SubmissionErrorStruct{
		ErrorCode:    int(e.ErrorCode),
		ErrorMessage: string(e.ErrorMessage),
	}

	var serr *domain.SubmissionError
	if errors.As(err, &serr) {
		response.Step = string(serr.Step)
		response.Compensated = serr.Compensated
	}

	c.AbortWithStatusJSON(status, response)
}
