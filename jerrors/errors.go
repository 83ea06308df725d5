// Package jerrors defines the error shape returned to GraphQL clients.
package jerrors

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql/gqlerrors"
)

// Code classifies an error for clients. It is exposed as extensions.code.
type Code string

const (
	Unknown            Code = "Unknown"
	NotFound           Code = "NotFound"
	InvalidArgument    Code = "InvalidArgument"
	AlreadyExists      Code = "AlreadyExists"
	FailedPrecondition Code = "FailedPrecondition"
	Internal           Code = "Internal"
)

// Extensions holds the machine readable part of an Error.
type Extensions struct {
	Code Code `json:"code"`
}

// Error is a GraphQL error as written on the wire.
type Error struct {
	Message string        `json:"message"`
	Ext     *Extensions   `json:"extensions"`
	Paths   []interface{} `json:"paths"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Code returns the classification of e, Unknown if none was set.
func (e *Error) Code() Code {
	if e.Ext == nil || e.Ext.Code == "" {
		return Unknown
	}
	return e.Ext.Code
}

// Extensions implements gqlerrors.ExtendedError so graphql-go copies the
// code into formatted resolver errors.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Code())}
}

var _ gqlerrors.ExtendedError = &Error{}

// New returns an Error with the given code and formatted message.
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Ext:     &Extensions{Code: code},
		Paths:   []interface{}{},
	}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return Unknown
}

// ConvertError converts any error into an *Error. Errors that already carry
// a code keep it; everything else is reported as Unknown.
func ConvertError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		out := *e
		if out.Paths == nil {
			out.Paths = []interface{}{}
		}
		if out.Ext == nil {
			out.Ext = &Extensions{Code: Unknown}
		}
		return &out
	}

	return &Error{
		Message: err.Error(),
		Ext:     &Extensions{Code: Unknown},
		Paths:   []interface{}{},
	}
}

// FromFormatted converts the errors produced by graphql-go execution.
func FromFormatted(errs []gqlerrors.FormattedError) []*Error {
	if len(errs) == 0 {
		return nil
	}

	out := make([]*Error, 0, len(errs))
	for _, f := range errs {
		code := Unknown
		if c, ok := f.Extensions["code"].(string); ok && c != "" {
			code = Code(c)
		}
		paths := f.Path
		if paths == nil {
			paths = []interface{}{}
		}
		out = append(out, &Error{
			Message: f.Message,
			Ext:     &Extensions{Code: code},
			Paths:   paths,
		})
	}
	return out
}
