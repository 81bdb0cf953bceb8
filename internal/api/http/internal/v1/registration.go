package v1

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/internal/service"
)

func (h *Handler) initRegistrationRoutes(api *gin.RouterGroup) {
	registrations := api.Group("/registrations")
	registrations.POST("", h.startRegistration)

	current := registrations.Group("/current", h.registrationIdentityMiddleware)
	{
		current.GET("", h.getRegistration)
		current.DELETE("", h.cancelRegistration)
		current.PATCH("/form", h.updateRegistrationForm)
		current.POST("/back", h.registrationBack)
		current.POST("/submit", h.submitRegistration)

		current.POST("/steps/submit", h.submitRegistrationStep)
		current.POST("/steps/skip", h.skipRegistrationStep)
		current.POST("/steps/:step/complete", h.completeRegistrationStep)

		current.POST("/otp/:channel/request", h.requestOTP)
		current.POST("/otp/:channel/resend", h.resendOTP)
		current.POST("/otp/:channel/digits", h.enterOTPDigit)

		current.POST("/capture/id", h.captureID)
		current.POST("/capture/face", h.captureFace)
	}
}

type startRegistrationInput struct {
	Kind string `json:"kind" binding:"required,oneof=resident business family"`
}

type startRegistrationResponse struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
}

type otpRequestInput struct {
	Destination string `json:"destination" binding:"required,max=255"`
}

type otpDigitInput struct {
	Index *int   `json:"index" binding:"required,min=0,max=5"`
	Value string `json:"value" binding:"otpdigit"`
}

// photoEnvelopeBytes is the room left for JSON around the base64 photo.
const photoEnvelopeBytes = 1024

type photoInput struct {
	Photo       string `json:"photo" binding:"required"`
	ContentType string `json:"content_type" binding:"omitempty,oneof=image/jpeg image/png"`
}

type submitRegistrationResponse struct {
	*service.RegistrationView
	AccessToken string `json:"access_token,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

// @Summary Start registration
// @Tags Registration
// @Description Opens a registration session and returns the token that addresses it
// @ModuleID startRegistration
// @Accept  json
// @Produce  json
// @Param input body startRegistrationInput true "registration kind"
// @Success 201 {object} startRegistrationResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /registrations [post]
func (h *Handler) startRegistration(c *gin.Context) {
	var input startRegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	started, err := h.services.Registrations.Start(c.Request.Context(), domain.RegistrationKind(input.Kind))
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, startRegistrationResponse{
		ID:        started.ID,
		Token:     started.Token,
		ExpiresIn: int64(started.ExpiresIn.Seconds()),
	})
}

// @Summary Current registration
// @Tags Registration
// @Description Returns the active step, form values, OTP and capture state
// @ModuleID getRegistration
// @Produce  json
// @Success 200 {object} service.RegistrationView
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current [get]
func (h *Handler) getRegistration(c *gin.Context) {
	h.withRegistration(c, func(id uuid.UUID) (*service.RegistrationView, error) {
		return h.services.Registrations.Get(c.Request.Context(), id)
	})
}

// @Summary Cancel registration
// @Tags Registration
// @Description Discards the registration and everything entered so far
// @ModuleID cancelRegistration
// @Success 204
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current [delete]
func (h *Handler) cancelRegistration(c *gin.Context) {
	id, ok := registrationID(c)
	if !ok {
		return
	}

	if err := h.services.Registrations.Cancel(c.Request.Context(), id); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Update form
// @Tags Registration
// @Description Merges a partial form document into the stored values
// @ModuleID updateRegistrationForm
// @Accept  json
// @Produce  json
// @Param input body domain.RegistrationForm true "partial form"
// @Success 200 {object} service.RegistrationView
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current/form [patch]
func (h *Handler) updateRegistrationForm(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil || !json.Valid(patch) {
		errorResponse(c, InvalidRequestBodyCode)
		return
	}

	h.withRegistration(c, func(id uuid.UUID) (*service.RegistrationView, error) {
		return h.services.Registrations.UpdateForm(c.Request.Context(), id, patch)
	})
}

// @Summary Step back
// @Tags Registration
// @Description Goes back one phase or step, leaving the registration from the first step
// @ModuleID registrationBack
// @Produce  json
// @Success 200 {object} service.RegistrationView
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current/back [post]
func (h *Handler) registrationBack(c *gin.Context) {
	h.withRegistration(c, func(id uuid.UUID) (*service.RegistrationView, error) {
		return h.services.Registrations.Back(c.Request.Context(), id)
	})
}

// @Summary Submit step
// @Tags Registration
// @Description Validates the active form step and advances to the next one
// @ModuleID submitRegistrationStep
// @Produce  json
// @Success 200 {object} service.RegistrationView
// @Failure 400 {object} ValidationErrorStruct
// @Failure 409 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current/steps/submit [post]
func (h *Handler) submitRegistrationStep(c *gin.Context) {
	h.withRegistration(c, func(id uuid.UUID) (*service.RegistrationView, error) {
		return h.services.Registrations.SubmitStep(c.Request.Context(), id)
	})
}

// @Summary Skip step
// @Tags Registration
// @Description Skips an optional or grouped step
// @ModuleID skipRegistrationStep
// @Produce  json
// @Success 200 {object} service.RegistrationView
// @Failure 409 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current/steps/skip [post]
func (h *Handler) skipRegistrationStep(c *gin.Context) {
	h.withRegistration(c, func(id uuid.UUID) (*service.RegistrationView, error) {
		return h.services.Registrations.SkipStep(c.Request.Context(), id)
	})
}

// @Summary Complete step
// @Tags Registration
// @Description Validates and marks a form step complete without moving the cursor
// @ModuleID completeRegistrationStep
// @Produce  json
// @Param step path int true "step id"
// @Success 200 {object} service.RegistrationView
// @Failure 400 {object} ValidationErrorStruct
// @Failure 409 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current/steps/{step}/complete [post]
func (h *Handler) completeRegistrationStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		errorResponse(c, UnknownStepCode)
		return
	}

	h.withRegistration(c, func(id uuid.UUID) (*service.RegistrationView, error) {
		return h.services.Registrations.CompleteStep(c.Request.Context(), id, domain.StepID(step))
	})
}

// @Summary Request OTP
// @Tags OTP
// @Description Sends a verification code to the phone number or email address
// @ModuleID requestOTP
// @Accept  json
// @Produce  json
// @Param channel path string true "phone or email"
// @Param input body otpRequestInput true "destination"
// @Success 200 {object} service.RegistrationView
// @Failure 400 {object} ValidationErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current/otp/{channel}/request [post]
func (h *Handler) requestOTP(c *gin.Context) {
	var input otpRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	channel := domain.Channel(c.Param("channel"))
	h.withRegistration(c, func(id uuid.UUID) (*service.RegistrationView, error) {
		return h.services.Registrations.RequestOTP(c.Request.Context(), id, channel, input.Destination)
	})
}

// @Summary Resend OTP
// @Tags OTP
// @Description Sends a new code to the destination of the open OTP session
// @ModuleID resendOTP
// @Produce  json
// @Param channel path string true "phone or email"
// @Success 200 {object} service.RegistrationView
// @Failure 409 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current/otp/{channel}/resend [post]
func (h *Handler) resendOTP(c *gin.Context) {
	channel := domain.Channel(c.Param("channel"))
	h.withRegistration(c, func(id uuid.UUID) (*service.RegistrationView, error) {
		return h.services.Registrations.ResendOTP(c.Request.Context(), id, channel)
	})
}

// @Summary Enter OTP digit
// @Tags OTP
// @Description Sets one digit cell; the code is verified once every cell is filled
// @ModuleID enterOTPDigit
// @Accept  json
// @Produce  json
// @Param channel path string true "phone or email"
// @Param input body otpDigitInput true "digit"
// @Success 200 {object} service.RegistrationView
// @Failure 400 {object} ValidationErrorStruct
// @Failure 409 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current/otp/{channel}/digits [post]
func (h *Handler) enterOTPDigit(c *gin.Context) {
	var input otpDigitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	channel := domain.Channel(c.Param("channel"))
	h.withRegistration(c, func(id uuid.UUID) (*service.RegistrationView, error) {
		return h.services.Registrations.EnterDigit(c.Request.Context(), id, channel, *input.Index, input.Value)
	})
}

// @Summary Capture ID
// @Tags Identity
// @Description Matches a photo of a government ID against the personal information
// @ModuleID captureID
// @Accept  json
// @Produce  json
// @Param input body photoInput true "base64 photo"
// @Success 200 {object} service.RegistrationView
// @Failure 400 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 413 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current/capture/id [post]
func (h *Handler) captureID(c *gin.Context) {
	photo, ok := h.bindPhoto(c)
	if !ok {
		return
	}

	h.withRegistration(c, func(id uuid.UUID) (*service.RegistrationView, error) {
		return h.services.Registrations.CaptureID(c.Request.Context(), id, photo)
	})
}

// @Summary Capture face
// @Tags Identity
// @Description Matches a selfie against the verified ID and waits for the pushed result
// @ModuleID captureFace
// @Accept  json
// @Produce  json
// @Param input body photoInput true "base64 photo"
// @Success 200 {object} service.RegistrationView
// @Failure 400 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 413 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Failure 504 {object} ErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current/capture/face [post]
func (h *Handler) captureFace(c *gin.Context) {
	photo, ok := h.bindPhoto(c)
	if !ok {
		return
	}

	h.withRegistration(c, func(id uuid.UUID) (*service.RegistrationView, error) {
		return h.services.Registrations.CaptureFace(c.Request.Context(), id, photo)
	})
}

// @Summary Submit registration
// @Tags Registration
// @Description Creates the personal, address, role and account records
// @ModuleID submitRegistration
// @Produce  json
// @Success 200 {object} submitRegistrationResponse
// @Failure 409 {object} SubmissionErrorStruct
// @Failure 500 {object} SubmissionErrorStruct
// @Security RegistrationAuth
// @Router /registrations/current/submit [post]
func (h *Handler) submitRegistration(c *gin.Context) {
	id, ok := registrationID(c)
	if !ok {
		return
	}

	view, err := h.services.Registrations.Submit(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	response := submitRegistrationResponse{RegistrationView: view}
	if view.Result != nil {
		token, ttl, err := h.tokenManager.NewJWT(view.Result.AccountID)
		if err != nil {
			serviceErrorResponse(c, err)
			return
		}
		response.AccessToken = token
		response.ExpiresIn = int64(ttl.Seconds())
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) withRegistration(c *gin.Context, op func(id uuid.UUID) (*service.RegistrationView, error)) {
	id, ok := registrationID(c)
	if !ok {
		return
	}

	view, err := op(id)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func registrationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := getRegistrationID(c)
	if err != nil {
		errorResponseWithStatus(c, http.StatusUnauthorized, RegistrationTokenInvalidCode)
		return uuid.Nil, false
	}
	return id, true
}

// bindPhoto reads a base64 photo of at most Registration.MaxPhotoBytes decoded bytes.
func (h *Handler) bindPhoto(c *gin.Context) (domain.Photo, bool) {
	limit := int(h.config.Registration.MaxPhotoBytes)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(base64.StdEncoding.EncodedLen(limit)+photoEnvelopeBytes))

	var input photoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponseWithStatus(c, http.StatusRequestEntityTooLarge, PhotoTooLargeCode)
			return domain.Photo{}, false
		}
		validationErrorResponse(c, err)
		return domain.Photo{}, false
	}

	data, err := base64.StdEncoding.DecodeString(input.Photo)
	if err != nil {
		errorResponse(c, InvalidPhotoCode)
		return domain.Photo{}, false
	}
	if len(data) > limit {
		errorResponseWithStatus(c, http.StatusRequestEntityTooLarge, PhotoTooLargeCode)
		return domain.Photo{}, false
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return domain.Photo{Data: data, ContentType: contentType}, true
}
