// Package errors defines the coded errors jappaper reports at its edges.
//
// Page geometry never fails. Errors come from reading templates, importing
// character lists, exporting artifacts and talking to the template store, and
// each carries a [Code] that the CLI prints and the HTTP API maps to a status:
//
//	INVALID_*           bad input from the caller (400)
//	*_NOT_FOUND         a template or file does not exist (404)
//	EXPORT_FAILED       a sink could not produce an artifact (500)
//	INTERNAL_ERROR      anything else (500)
//
// Use [New] for fresh errors and [Wrap] to attach a code to a lower-level
// cause:
//
//	if err := toml.Unmarshal(data, &doc); err != nil {
//	    return errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode %s", path)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeInvalidImport   Code = "INVALID_IMPORT"

	ErrCodeTemplateNotFound Code = "TEMPLATE_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	ErrCodeExportFailed Code = "EXPORT_FAILED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

type class int

const (
	classOther class = iota
	classInvalid
	classNotFound
)

var classes = map[Code]class{
	ErrCodeInvalidInput:     classInvalid,
	ErrCodeInvalidFormat:    classInvalid,
	ErrCodeInvalidTemplate:  classInvalid,
	ErrCodeInvalidImport:    classInvalid,
	ErrCodeTemplateNotFound: classNotFound,
	ErrCodeFileNotFound:     classNotFound,
	ErrCodeExportFailed:     classOther,
	ErrCodeInternal:         classOther,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an error with code whose cause is err.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// GetCode returns the code of the outermost [*Error] in err's chain, or "".
func GetCode(err error) Code {
	if e := asError(err); e != nil {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost [*Error] in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns the message of a coded error without its code prefix,
// and err.Error() for any other error.
func UserMessage(err error) string {
	if e := asError(err); e != nil {
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err carries an INVALID_* code.
func IsInvalid(err error) bool { return classes[GetCode(err)] == classInvalid }

// IsNotFound reports whether err carries a not-found code.
func IsNotFound(err error) bool { return classes[GetCode(err)] == classNotFound }

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
