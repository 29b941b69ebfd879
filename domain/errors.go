package domain

import (
	"errors"
	"fmt"
)

type ValidationCode string

const (
	CodeMissingImage    ValidationCode = "MISSING_IMAGE"
	CodeMissingName     ValidationCode = "MISSING_NAME"
	CodeMissingCategory ValidationCode = "MISSING_CATEGORY"
	CodeMissingDate     ValidationCode = "MISSING_DATE"
	CodeInvalidDate     ValidationCode = "INVALID_DATE"
)

// ValidationError is a user-correctable input problem. It is never fatal.
type ValidationError struct {
	Code    ValidationCode
	Field   string
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(code ValidationCode, field, title, message string) *ValidationError {
	return &ValidationError{
		Code:    code,
		Field:   field,
		Title:   title,
		Message: message,
	}
}

var (
	ErrMissingImage    = NewValidationError(CodeMissingImage, "image", "Missing Image", "Please select a product image")
	ErrMissingName     = NewValidationError(CodeMissingName, "name", "Missing Name", "Please enter a product name")
	ErrMissingCategory = NewValidationError(CodeMissingCategory, "category", "Missing Category", "Please select a product category")
	ErrMissingDate     = NewValidationError(CodeMissingDate, "expiry_date", "Missing Date", "Please select an expiry date")
	ErrInvalidDate     = NewValidationError(CodeInvalidDate, "expiry_date", "Invalid Date", "Please select a future date")
)

var (
	ErrWriteFailed = errors.New("write failed")
	ErrReadFailed  = errors.New("read failed")
	ErrStoreClosed = errors.New("item store closed")
)

// StoreError reports a persistence failure. Kind is one of ErrWriteFailed,
// ErrReadFailed or ErrStoreClosed; the item must not be assumed saved.
type StoreError struct {
	Op   string
	Kind error
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("item store %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("item store %s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// EnrichmentError wraps a failed recognition call. The form stays editable.
type EnrichmentError struct {
	Err error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("image recognition failed: %v", e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}

// ConfigurationError disables one optional feature; manual entry keeps working.
type ConfigurationError struct {
	Feature string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Feature, e.Message)
}

var ErrEnrichmentUnavailable = &ConfigurationError{
	Feature: "image recognition",
	Message: "image recognition is not configured, enter the product details manually",
}
