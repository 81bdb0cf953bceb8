package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	AccountAlreadyExistsCode    = 1001
	AccountAlreadyExistsMessage = "account already exists"
	AccountNotFoundCode         = 1002
	AccountNotFoundMessage      = "account not found"

	RegistrationNotFoundCode        = 2001
	RegistrationNotFoundMessage     = "registration not found or expired"
	RegistrationTokenInvalidCode    = 2002
	RegistrationTokenInvalidMessage = "registration token is missing or invalid"
	UnknownRegistrationKindCode     = 2003
	UnknownRegistrationKindMessage  = "unknown registration kind"
	StageNotActiveCode              = 2004
	StageNotActiveMessage           = "operation is not available at the current step"
	SequenceFinishedCode            = 2005
	SequenceFinishedMessage         = "registration steps are already finished"
	UnknownStepCode                 = 2006
	UnknownStepMessage              = "unknown step"
	StepIncompleteCode              = 2007
	StepIncompleteMessage           = "current step is not complete"
	StepNotSkippableCode            = 2008
	StepNotSkippableMessage         = "current step cannot be skipped"
	NotReadyToSubmitCode            = 2009
	NotReadyToSubmitMessage         = "registration is not ready to submit"
	SubmissionFailedCode            = 2010
	SubmissionFailedMessage         = "registration submission failed"

	UnknownChannelCode        = 3001
	UnknownChannelMessage     = "unknown otp channel"
	NoActiveOTPSessionCode    = 3002
	NoActiveOTPSessionMessage = "no verification code was requested for this channel"
	DispatchFailedCode        = 3003
	DispatchFailedMessage     = "upstream service is unavailable, try again"

	CaptureInProgressCode    = 4001
	CaptureInProgressMessage = "a capture is already in progress"
	CameraUnavailableCode    = 4002
	CameraUnavailableMessage = "no photo was captured"
	MatchTimeoutCode         = 4003
	MatchTimeoutMessage      = "face match timed out, try again"
	InvalidPhotoCode         = 4004
	InvalidPhotoMessage      = "photo must be base64 encoded"
	PhotoTooLargeCode        = 4005
	PhotoTooLargeMessage     = "photo is too large"

	WebhookSecretInvalidCode    = 5001
	WebhookSecretInvalidMessage = "webhook secret is invalid"

	ValidationErrorCode       = 6000
	ValidationErrorMessage    = "Validation error"
	InvalidRequestBodyCode    = 6001
	InvalidRequestBodyMessage = "invalid request body"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

type SubmissionErrorStruct struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	Step         string `json:"step"`
	Compensated  bool   `json:"compensated"`
} // @name SubmissionErrorStruct

var errorMessages = map[ErrorCode]ErrorMessage{
	AccountAlreadyExistsCode:     AccountAlreadyExistsMessage,
	AccountNotFoundCode:          AccountNotFoundMessage,
	RegistrationNotFoundCode:     RegistrationNotFoundMessage,
	RegistrationTokenInvalidCode: RegistrationTokenInvalidMessage,
	UnknownRegistrationKindCode:  UnknownRegistrationKindMessage,
	StageNotActiveCode:           StageNotActiveMessage,
	SequenceFinishedCode:         SequenceFinishedMessage,
	UnknownStepCode:              UnknownStepMessage,
	StepIncompleteCode:           StepIncompleteMessage,
	StepNotSkippableCode:         StepNotSkippableMessage,
	NotReadyToSubmitCode:         NotReadyToSubmitMessage,
	SubmissionFailedCode:         SubmissionFailedMessage,
	UnknownChannelCode:           UnknownChannelMessage,
	NoActiveOTPSessionCode:       NoActiveOTPSessionMessage,
	DispatchFailedCode:           DispatchFailedMessage,
	CaptureInProgressCode:        CaptureInProgressMessage,
	CameraUnavailableCode:        CameraUnavailableMessage,
	MatchTimeoutCode:             MatchTimeoutMessage,
	InvalidPhotoCode:             InvalidPhotoMessage,
	PhotoTooLargeCode:            PhotoTooLargeMessage,
	WebhookSecretInvalidCode:     WebhookSecretInvalidMessage,
	InvalidRequestBodyCode:       InvalidRequestBodyMessage,
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	if msg, ok := errorMessages[code]; ok {
		errorStruct.ErrorCode = code
		errorStruct.ErrorMessage = msg
	}

	return errorStruct
}
