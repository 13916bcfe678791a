package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the domain an error belongs to
type ErrorType int

const (
	ErrorTypeLaunch ErrorType = iota
	ErrorTypeMount
	ErrorTypeRegistry
	ErrorTypeScan
	ErrorTypeConfig
)

// String returns a string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeLaunch:
		return "launch"
	case ErrorTypeMount:
		return "mount"
	case ErrorTypeRegistry:
		return "registry"
	case ErrorTypeScan:
		return "scan"
	case ErrorTypeConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Code identifies the specific failure within a domain
type Code int

const (
	CodeUnknown Code = iota
	CodeNotMounted
	CodeInvalidDesktopEntry
	CodeWorkingDir
	CodeLaunchFailed
	CodeNoDefaultApp
	CodeResolveLoop
	CodeScanFailed
)

// AppError represents a structured application error
type AppError struct {
	Type      ErrorType
	Code      Code
	Operation string
	Path      string
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error in %s [%s]: %s", e.Type, e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the Code from an error chain, or CodeUnknown for foreign
// errors.
func CodeOf(err error) Code {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// NewNotMountedError reports a mountable entry with no target yet
func NewNotMountedError(path string) *AppError {
	return &AppError{
		Type:      ErrorTypeMount,
		Code:      CodeNotMounted,
		Operation: "resolve_target",
		Path:      path,
		Message:   "the path is not mounted",
	}
}

// NewInvalidDesktopEntryError reports a desktop-entry identifier that could
// not be resolved to an application
func NewInvalidDesktopEntryError(id string) *AppError {
	return &AppError{
		Type:      ErrorTypeRegistry,
		Code:      CodeInvalidDesktopEntry,
		Operation: "resolve_desktop_entry",
		Path:      id,
		Message:   fmt.Sprintf("invalid desktop entry file: %q", id),
	}
}

// NewWorkingDirError reports a working directory that cannot be used for a
// launch; the launch itself proceeds without it
func NewWorkingDirError(dir string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeLaunch,
		Code:      CodeWorkingDir,
		Operation: "set_working_directory",
		Path:      dir,
		Message:   fmt.Sprintf("cannot set working directory to %q: %v", dir, err),
		Err:       err,
	}
}

// NewLaunchError reports a failed launch attempt, attributed to one path
func NewLaunchError(path string, err error) *AppError {
	msg := "launch failed"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{
		Type:      ErrorTypeLaunch,
		Code:      CodeLaunchFailed,
		Operation: "launch",
		Path:      path,
		Message:   msg,
		Err:       err,
	}
}

// NewNoDefaultAppError reports that no application is registered for a type
func NewNoDefaultAppError(mimeType string) *AppError {
	return &AppError{
		Type:      ErrorTypeRegistry,
		Code:      CodeNoDefaultApp,
		Operation: "default_app",
		Message:   fmt.Sprintf("no application available for %q", mimeType),
	}
}

// NewResolveLoopError reports re-resolution cut off at the depth bound
func NewResolveLoopError(path string, depth int) *AppError {
	return &AppError{
		Type:      ErrorTypeScan,
		Code:      CodeResolveLoop,
		Operation: "resolve_paths",
		Path:      path,
		Message:   fmt.Sprintf("giving up after %d resolution attempts", depth),
	}
}

// NewScanError reports a metadata query that could not run to completion
func NewScanError(operation, path string, err error) *AppError {
	msg := "scan failed"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{
		Type:      ErrorTypeScan,
		Code:      CodeScanFailed,
		Operation: operation,
		Path:      path,
		Message:   msg,
		Err:       err,
	}
}

// NewConfigError creates a new configuration error
func NewConfigError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeConfig,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
