package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates the value cannot be converted to the
	// setting's type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates the value fails validation.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode uint8

const (
	// ErrCodeUnknown is an unspecified validation error.
	ErrCodeUnknown ValidationErrorCode = iota
	// ErrCodeTypeMismatch indicates a value of the wrong type.
	ErrCodeTypeMismatch
	// ErrCodeOutOfRange indicates a numeric value outside its bounds.
	ErrCodeOutOfRange
	// ErrCodeInvalidEnum indicates a value that is not one of the allowed names.
	ErrCodeInvalidEnum
	// ErrCodeUnknownSetting indicates a key that no setting defines.
	ErrCodeUnknownSetting
)

// String returns the string representation of the code.
func (c ValidationErrorCode) String() string {
	switch c {
	case ErrCodeTypeMismatch:
		return "type_mismatch"
	case ErrCodeOutOfRange:
		return "out_of_range"
	case ErrCodeInvalidEnum:
		return "invalid_enum"
	case ErrCodeUnknownSetting:
		return "unknown_setting"
	default:
		return "unknown"
	}
}

// ValidationError describes a setting whose value was rejected.
type ValidationError struct {
	// Path is the setting path (e.g. "render.hold").
	Path string
	// Message describes the problem.
	Message string
	// Value is the rejected value.
	Value any
	// Code categorizes the error.
	Code ValidationErrorCode
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid %s (%v): %s", e.Path, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Path, e.Message)
}

// Is implements error matching for ValidationError.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidationFailed:
		return true
	case ErrSettingNotFound:
		return e.Code == ErrCodeUnknownSetting
	case ErrTypeMismatch:
		return e.Code == ErrCodeTypeMismatch
	}
	return false
}
