// Package custom_errors defines the error kinds the CLI reports: flag and argument problems,
// option validation, failed enrichment, filesystem failures and user cancellation.
package custom_errors

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidFlag represents an error indicating an invalid flag.
var ErrInvalidFlag = errors.New("invalid flag")

// ErrInvalidArgument represents an error indicating an invalid argument.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrValidation marks option values that fail validation before any work starts.
var ErrValidation = errors.New("validation failed")

// ErrEnrichment marks a failed per-package detail fetch.
var ErrEnrichment = errors.New("enrichment failed")

// ErrFilesystem marks a directory or file that could not be created or written.
var ErrFilesystem = errors.New("filesystem error")

// ErrUserCancelled is returned when the user declines to continue an interactive flow.
var ErrUserCancelled = errors.New("operation is canceled")

// FlagName is a string type representing the name of a flag.
type FlagName string

var flagNameRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Error validates the FlagName and returns an error if it's invalid.
// A valid flag name must contain only alphanumeric characters.
func (self FlagName) Error() error {
	if !flagNameRegex.MatchString(string(self)) {
		return fmt.Errorf("%w: %s must be alphanumeric: %s", ErrInvalidFlag, self, string(self))
	}
	return nil
}

// CreateInvalidFlagErrorWithMessage creates an error with a custom message for an invalid flag.
// It first validates the flag name and returns the validation error if present.
var CreateInvalidFlagErrorWithMessage = func(flagName FlagName, message string) error {
	if err := flagName.Error(); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s %s", ErrInvalidFlag, flagName, message)
}

// CreateInvalidArgumentErrorWithMessage creates an error with a custom message for an invalid argument.
var CreateInvalidArgumentErrorWithMessage = func(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, message)
}

// CreateValidationErrorWithMessage creates an error for an option value that failed validation.
var CreateValidationErrorWithMessage = func(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// EnrichmentError carries the name of the package whose details could not be fetched.
type EnrichmentError struct {
	Package string
	Err     error
}

func NewEnrichmentError(pkg string, err error) *EnrichmentError {
	return &EnrichmentError{Package: pkg, Err: err}
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("%v for %s: %v", ErrEnrichment, e.Package, e.Err)
}

// Unwrap exposes both the ErrEnrichment kind and the underlying cause.
func (e *EnrichmentError) Unwrap() []error {
	return []error{ErrEnrichment, e.Err}
}

// FilesystemError records which path an operation failed on.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func NewFilesystemError(op, path string, err error) *FilesystemError {
	return &FilesystemError{Op: op, Path: path, Err: err}
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%v: %s %q: %v", ErrFilesystem, e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() []error {
	return []error{ErrFilesystem, e.Err}
}
