package errors

import "fmt"

// AppError carries a wire error code, a short content tag (usually the
// offending field name) and an optional underlying cause.
type AppError struct {
	Code    string
	Content string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Content, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Content)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, content string) *AppError {
	return &AppError{
		Code:    code,
		Content: content,
	}
}

func Wrap(err error, code, content string) *AppError {
	return &AppError{
		Code:    code,
		Content: content,
		Err:     err,
	}
}

// Error codes. These match the wire envelope kinds except ErrCodeNotFound,
// which is internal and rendered by handlers as a 404 content_invalid.
const (
	ErrCodeContentMissing     = "content_missing"
	ErrCodeContentInvalid     = "content_invalid"
	ErrCodeContentDuplicate   = "content_duplicate"
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeAccessDenied       = "access_denied"
	ErrCodeContentLimit       = "content_limit"
	ErrCodeServerError        = "server_error"
	ErrCodeNotImplemented     = "not_implemented"
	ErrCodeNotFound           = "not_found"
)

// Code returns the AppError code of err, or server_error for anything else.
func Code(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrCodeServerError
}
