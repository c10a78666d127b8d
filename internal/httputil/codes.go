package httputil

// Machine-readable error codes returned in ErrorResponse.Code.
const (
	CodeValidation         = "validation_error"
	CodeInvalidRequestBody = "invalid_request_body"
	CodeInvalidCredentials = "invalid_credentials"
	CodeAccountDisabled    = "account_disabled"
	CodeGoogleAccount      = "google_account_required"
	CodePasswordAccount    = "password_account_exists"
	CodeEmailUnverified    = "email_unverified"
	CodeUnauthorized       = "unauthorized"
	CodeTokenExpired       = "token_expired"
	CodeTokenInvalid       = "token_invalid"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeTooManyRequests    = "too_many_requests"
	CodeInternal           = "internal_error"
)
