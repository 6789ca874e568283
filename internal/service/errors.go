package service

type ErrorCode string

const (
	ErrorCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrorCodeUnspecified  ErrorCode = "UNSPECIFIED"
	ErrorCodeInvalidBody  ErrorCode = "INVALID_BODY"
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func (e *Error) Error() string {
	return e.Message
}

// asError keeps a nil *Error from turning into a non-nil error interface.
func asError(err *Error) error {
	if err == nil {
		return nil
	}
	return err
}
