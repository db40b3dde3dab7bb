package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	plain := New(ErrCodeContentMissing, "email")
	if got := plain.Error(); got != "content_missing: email" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := Wrap(fmt.Errorf("disk full"), ErrCodeServerError, "poll")
	if got := wrapped.Error(); got != "server_error: poll (disk full)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	wrapped := Wrap(cause, ErrCodeServerError, "db")

	if !stderrors.Is(wrapped, cause) {
		t.Error("errors.Is() failed to find the wrapped cause")
	}
	if New(ErrCodeNotFound, "poll").Unwrap() != nil {
		t.Error("Unwrap() on plain error != nil")
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "app error", err: New(ErrCodeNotFound, "poll"), want: ErrCodeNotFound},
		{name: "wrapped app error", err: Wrap(fmt.Errorf("x"), ErrCodeContentLimit, "polls"), want: ErrCodeContentLimit},
		{name: "foreign error", err: fmt.Errorf("plain"), want: ErrCodeServerError},
		{name: "nil", err: nil, want: ErrCodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %q, want %q", got, tt.want)
			}
		})
	}
}
