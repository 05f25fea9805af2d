// Package errors provides standardized error types for the checker and CLI.
package errors

import (
	"fmt"
)

// Code represents an application error code.
type Code string

const (
	CodeNotFound        Code = "NOT_FOUND"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeInvalidData     Code = "INVALID_DATA"
	CodeInternal        Code = "INTERNAL_ERROR"
)

// Process exit statuses, following sysexits.h where one fits.
const (
	ExitCheckFailed = 2
	ExitUsage       = 64
	ExitDataErr     = 65
	ExitNoInput     = 66
	ExitSoftware    = 70
)

// AppError represents a structured application error.
type AppError struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	ExitStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a not found error with a custom message.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		ExitStatus: ExitNoInput,
	}
}

// InvalidArgument creates a usage error with a custom message.
func InvalidArgument(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidArgument,
		Message:    message,
		ExitStatus: ExitUsage,
	}
}

// InvalidData creates an error for corpus data that cannot be used.
func InvalidData(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInvalidData,
		Message:    message,
		ExitStatus: ExitDataErr,
		Err:        err,
	}
}

// Internal creates an internal error wrapping the real error.
func Internal(message string, err error) *AppError {
	if message == "" {
		message = "Internal error"
	}
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		ExitStatus: ExitSoftware,
		Err:        err,
	}
}
