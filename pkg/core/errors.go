package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents specific error conditions in the engine
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Configuration value is out of range
	ErrCodeInvalidConfiguration
	// Direction value is not one of the four approaches
	ErrCodeInvalidDirection
	// Signal value is not a known colour
	ErrCodeInvalidSignalState
	// Tracked emergency vehicle did not leave in time
	ErrCodeClearanceTimeout
	// Observer panicked while handling a notification
	ErrCodeObserverPanic
)

// ConfigurationError represents an invalid configuration field
type ConfigurationError struct {
	Field string
	Issue string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, issue string) *ConfigurationError {
	return &ConfigurationError{
		Field: field,
		Issue: issue,
	}
}

// InputError represents an out-of-range argument to a control operation
type InputError struct {
	Code  ErrorCode
	Field string
	Value any
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}

// NewInputError creates a new input error
func NewInputError(code ErrorCode, field string, value any) *InputError {
	return &InputError{
		Code:  code,
		Field: field,
		Value: value,
	}
}

// ClearanceTimeoutError reports an emergency watch concluded by the fallback
type ClearanceTimeoutError struct {
	IncidentID string
	VehicleID  uint64
	Direction  Direction
	Waited     time.Duration
}

func (e *ClearanceTimeoutError) Error() string {
	return fmt.Sprintf("emergency vehicle %d on %s did not clear within %s (incident %s)",
		e.VehicleID, e.Direction, e.Waited, e.IncidentID)
}

// NewClearanceTimeoutError creates a new clearance timeout error
func NewClearanceTimeoutError(incidentID string, vehicleID uint64, dir Direction, waited time.Duration) *ClearanceTimeoutError {
	return &ClearanceTimeoutError{
		IncidentID: incidentID,
		VehicleID:  vehicleID,
		Direction:  dir,
		Waited:     waited,
	}
}

// ObserverError wraps a panic recovered from an observer
type ObserverError struct {
	Method string
	Panic  any
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf("observer panic in %s: %v", e.Method, e.Panic)
}

// IsConfigurationError checks if an error is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsInputError checks if an error is or wraps an InputError
func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsClearanceTimeoutError checks if an error is or wraps a ClearanceTimeoutError
func IsClearanceTimeoutError(err error) bool {
	var target *ClearanceTimeoutError
	return errors.As(err, &target)
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	var (
		cfgErr      *ConfigurationError
		inputErr    *InputError
		timeoutErr  *ClearanceTimeoutError
		observerErr *ObserverError
	)
	switch {
	case errors.As(err, &inputErr):
		return inputErr.Code
	case errors.As(err, &cfgErr):
		return ErrCodeInvalidConfiguration
	case errors.As(err, &timeoutErr):
		return ErrCodeClearanceTimeout
	case errors.As(err, &observerErr):
		return ErrCodeObserverPanic
	default:
		return ErrCodeNone
	}
}

// ErrorCollector collects multiple errors during validation
type ErrorCollector struct {
	errors []error
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collector
func (ec *ErrorCollector) Add(err error) {
	if err != nil {
		ec.errors = append(ec.errors, err)
	}
}

// HasErrors returns whether any errors were collected
func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.errors) > 0
}

// GetErrors returns all collected errors
func (ec *ErrorCollector) GetErrors() []error {
	return ec.errors
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (ec *ErrorCollector) Unwrap() []error {
	return ec.errors
}

// Error returns a string representation of all errors
func (ec *ErrorCollector) Error() string {
	if len(ec.errors) == 0 {
		return "no errors"
	}

	if len(ec.errors) == 1 {
		return ec.errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(ec.errors)))

	for i, err := range ec.errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}

	return sb.String()
}
