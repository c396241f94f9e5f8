package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeInvalidInput, "row %d out of range", 0), "INVALID_INPUT: row 0 out of range"},
		{"wrap", Wrap(ErrCodeExportFailed, errors.New("exit status 1"), "rsvg-convert"), "EXPORT_FAILED: rsvg-convert: exit status 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := Wrap(ErrCodeFileNotFound, cause, "open %s", "page.toml")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Message != "open page.toml" {
		t.Errorf("Message = %q, want %q", err.Message, "open page.toml")
	}
}

func TestIsAndGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching", New(ErrCodeInvalidImport, "x"), ErrCodeInvalidImport, true},
		{"other code", New(ErrCodeInvalidImport, "x"), ErrCodeInvalidFormat, false},
		{"outermost wins", Wrap(ErrCodeExportFailed, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeExportFailed, true},
		{"inner ignored", Wrap(ErrCodeExportFailed, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidInput, false},
		{"through fmt wrap", fmtWrap(New(ErrCodeTemplateNotFound, "x")), ErrCodeTemplateNotFound, true},
		{"plain", errors.New("plain"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "cell size must be positive")); got != "cell size must be positive" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestCategories(t *testing.T) {
	tests := []struct {
		err      error
		invalid  bool
		notFound bool
	}{
		{New(ErrCodeInvalidImport, "bad json"), true, false},
		{Wrap(ErrCodeInvalidTemplate, errors.New("toml"), "decode"), true, false},
		{New(ErrCodeTemplateNotFound, "missing"), false, true},
		{New(ErrCodeFileNotFound, "missing"), false, true},
		{New(ErrCodeExportFailed, "rsvg"), false, false},
		{errors.New("plain"), false, false},
		{nil, false, false},
	}

	for _, tt := range tests {
		if got := IsInvalid(tt.err); got != tt.invalid {
			t.Errorf("IsInvalid(%v) = %v, want %v", tt.err, got, tt.invalid)
		}
		if got := IsNotFound(tt.err); got != tt.notFound {
			t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.notFound)
		}
	}
}

func fmtWrap(err error) error { return fmt.Errorf("store: %w", err) }
