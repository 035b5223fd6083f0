package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	UserAlreadyExistsCode     = 1001
	UserAlreadyExistsMessage  = "user already exists"
	InvalidCredentialsCode    = 1002
	InvalidCredentialsMessage = "invalid credentials"
	UnauthorizedCode          = 1003
	UnauthorizedMessage       = "unauthorized"
	ForbiddenCode             = 1004
	ForbiddenMessage          = "forbidden"
	InvalidRequestCode        = 1005
	InvalidRequestMessage     = "invalid request"

	OtpInvalidCode            = 2001
	OtpInvalidMessage         = "invalid or expired OTP"
	OtpTooManyAttemptsCode    = 2002
	OtpTooManyAttemptsMessage = "too many attempts"
	OtpResendTooSoonCode      = 2003
	OtpResendTooSoonMessage   = "OTP requested too recently"
	OtpDispatchFailedCode     = 2004
	OtpDispatchFailedMessage  = "failed to send OTP"
	OtpNotFoundCode           = 2005
	OtpNotFoundMessage        = "otp not found"

	ValidationErrorCode    = 6000
	ValidationErrorMessage = "validation error"
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

var errorMessages = map[ErrorCode]ErrorMessage{
	UserAlreadyExistsCode:  UserAlreadyExistsMessage,
	InvalidCredentialsCode: InvalidCredentialsMessage,
	UnauthorizedCode:       UnauthorizedMessage,
	ForbiddenCode:          ForbiddenMessage,
	InvalidRequestCode:     InvalidRequestMessage,
	OtpInvalidCode:         OtpInvalidMessage,
	OtpTooManyAttemptsCode: OtpTooManyAttemptsMessage,
	OtpResendTooSoonCode:   OtpResendTooSoonMessage,
	OtpDispatchFailedCode:  OtpDispatchFailedMessage,
	OtpNotFoundCode:        OtpNotFoundMessage,
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	msg, ok := errorMessages[code]
	if !ok {
		return &ErrorStruct{ErrorCode: UnknownErrorCode, ErrorMessage: UnknownErrorMessage}
	}

	return &ErrorStruct{ErrorCode: code, ErrorMessage: msg}
}
