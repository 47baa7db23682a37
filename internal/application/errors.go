package application

import "errors"

// Login failure kinds. Controllers branch on these with errors.Is to render
// distinct messages and response codes; anything else degrades to a generic
// failure.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordInvalid  = errors.New("password invalid")
	ErrUserLocked       = errors.New("user locked")
	ErrSessionInvalid   = errors.New("session invalid")
	ErrPermissionDenied = errors.New("permission denied")

	ErrTokenInvalid      = errors.New("token invalid or expired")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrMessageNotFound   = errors.New("message not found")
	ErrAttachmentMissing = errors.New("attachment not found")
	ErrUploadsDisabled   = errors.New("attachment uploads disabled")
)
