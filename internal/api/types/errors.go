package types

import appErr "github.com/statusgate/engine/pkg/errors"

// Wire messages for the error bodies clients can see.
const (
	MsgInvalidJSON      = "Invalid JSON"
	MsgInvalidStatus    = "Invalid status"
	MsgAuthRequired     = "Authentication required"
	MsgSystemError      = "System error"
	MsgNotFound         = "Not found"
	MsgMethodNotAllowed = "Method not allowed"
	MsgBodyTooLarge     = "Request body too large"
	MsgDisallowedOrigin = "Disallowed CORS origin"
)

// NewErrorBody builds {"error": msg} plus extra fields. The error key always
// wins over an extra entry of the same name.
func NewErrorBody(msg string, extra map[string]any) map[string]any {
	body := make(map[string]any, len(extra)+1)
	for k, v := range extra {
		body[k] = v
	}
	body["error"] = msg
	return body
}

// FromAppError renders err as an error body. Non-AppError values are
// reported as a system error without leaking their text.
func FromAppError(err error) (int, map[string]any) {
	if e, ok := err.(*appErr.AppError); ok {
		return e.Status(), NewErrorBody(e.Message, e.Meta)
	}
	return appErr.HTTPStatus(appErr.CodeInternal), NewErrorBody(MsgSystemError, nil)
}
