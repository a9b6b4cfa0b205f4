package errors

import (
	"fmt"
)

// Error is the error type returned by all the services. On top of the
// message, it carries the HTTP status code the transport layer should
// reply with, and optionally the underlying cause.
type Error interface {
	error

	Code() int
	Message() string
	Cause() error
}

// DefaultCode defines the code that will be used when none is given.
// It is set to 500, Internal Server Error.
var DefaultCode = 500

type apiError struct {
	code  int
	msg   string
	cause *apiError
}

func (err *apiError) Error() string {
	if err.cause == nil {
		return err.msg
	}

	return fmt.Sprintf("%s: %v", err.msg, err.cause)
}

func (err *apiError) Code() int {
	return err.code
}

func (err *apiError) Message() string {
	return err.msg
}

func (err *apiError) Cause() error {
	if err.cause == nil {
		return nil
	}
	return err.cause
}

// An ErrorEnricher decorates an error, typically with a status code.
type ErrorEnricher func(error) error

func WithCode(code int) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		if err, ok := err.(*apiError); ok {
			err.code = code
			return err
		}

		return &apiError{
			msg:   err.Error(),
			code:  code,
			cause: nil,
		}
	}
}

func WithCause(cause error) ErrorEnricher {
	var apiCause *apiError
	switch cause := cause.(type) {
	case *apiError:
		apiCause = cause
	default:
		apiCause = &apiError{msg: cause.Error(), code: DefaultCode, cause: nil}
	}

	return func(err error) error {
		if err == nil {
			return nil
		}

		if apiErr, ok := err.(*apiError); ok {
			apiErr.cause = apiCause
			return apiErr
		}

		return &apiError{
			msg:   err.Error(),
			code:  apiCause.code,
			cause: apiCause,
		}
	}
}

func New(msg string, fs ...ErrorEnricher) error {
	var err error
	err = &apiError{
		msg:   msg,
		code:  DefaultCode,
		cause: nil,
	}

	for _, f := range fs {
		err = f(err)
	}

	return err
}
