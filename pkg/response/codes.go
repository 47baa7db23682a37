package response

// Code is the integral error category attached to failed response envelopes.
type Code int

const (
	CodeNone Code = iota // success, no error attached
	CodeOtherError
	CodeUserNotFound
	CodePasswordInvalid
	CodeUserLocked
	CodeSessionInvalid
	CodePermissionDenied
	CodeDuplicateUserName
	CodeDuplicateEmail
	CodeTokenInvalid
	CodeRoleNotFound
	CodeTicketNotFound
	CodeMessageNotFound
	CodeAttachmentNotFound
	CodeValidationFailed
)

func (c Code) String() string {
	switch c {
	case CodeNone:
		return "None"
	case CodeOtherError:
		return "OtherError"
	case CodeUserNotFound:
		return "UserNotFound"
	case CodePasswordInvalid:
		return "PasswordInvalid"
	case CodeUserLocked:
		return "UserLocked"
	case CodeSessionInvalid:
		return "SessionInvalid"
	case CodePermissionDenied:
		return "PermissionDenied"
	case CodeDuplicateUserName:
		return "DuplicateUserName"
	case CodeDuplicateEmail:
		return "DuplicateEmail"
	case CodeTokenInvalid:
		return "TokenInvalid"
	case CodeRoleNotFound:
		return "RoleNotFound"
	case CodeTicketNotFound:
		return "TicketNotFound"
	case CodeMessageNotFound:
		return "MessageNotFound"
	case CodeAttachmentNotFound:
		return "AttachmentNotFound"
	case CodeValidationFailed:
		return "ValidationFailed"
	}
	return "Unknown"
}
