package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"

	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgCheckInFailed  = "Failed to check in"
	ErrMsgFeedFailed     = "Failed to feed"
	ErrMsgDivineFailed   = "Failed to divine"
	ErrMsgFortuneFailed  = "Failed to tell fortune"
	ErrMsgDropFailed     = "Failed to attempt drop"
	ErrMsgBalanceFailed  = "Failed to get balance"
	ErrMsgProgressFailed = "Failed to get collection progress"
)
