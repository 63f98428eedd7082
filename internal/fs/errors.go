// Package fs provides the in-memory virtual filesystem.
//
// This file contains error types and error handling utilities.
package fs

import (
	"errors"
	"fmt"
	"syscall"

	"vfsshell/internal/logging"
)

var (
	errLogger = logging.GetLogger().WithPrefix("error")

	// ErrPathNotFound indicates a virtual path doesn't exist
	ErrPathNotFound = errors.New("path not found")

	// ErrNotADirectory indicates a directory operation on a file
	ErrNotADirectory = errors.New("not a directory")

	// ErrIsDirectory indicates a file operation on a directory
	ErrIsDirectory = errors.New("is a directory")

	// ErrInvalidPath indicates an invalid path format
	ErrInvalidPath = errors.New("invalid path format")

	// ErrKindConflict indicates a snapshot declares one path as both a file
	// and a directory
	ErrKindConflict = errors.New("path declared as both file and directory")

	// ErrReadOnly indicates attempt to modify read-only filesystem
	ErrReadOnly = errors.New("filesystem is read-only")
)

// Error wraps filesystem errors with context about the operation and
// affected path.
type Error struct {
	Op   string // Operation that failed (e.g., "load", "chdir")
	Path string // Affected path
	Err  error  // Underlying error
}

// Error implements the error interface, providing a formatted error message
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements error unwrapping for the errors.Is/As functions
func (e *Error) Unwrap() error {
	return e.Err
}

// ToFuseError converts an error to the errno FUSE expects.
func ToFuseError(err error) error {
	if err == nil {
		return nil
	}

	errLogger.Trace("Converting error to FUSE error: %v", err)
	switch {
	case errors.Is(err, ErrPathNotFound):
		return syscall.ENOENT
	case errors.Is(err, ErrNotADirectory):
		return syscall.ENOTDIR
	case errors.Is(err, ErrIsDirectory):
		return syscall.EISDIR
	case errors.Is(err, ErrInvalidPath):
		return syscall.EINVAL
	case errors.Is(err, ErrReadOnly):
		return syscall.EROFS
	default:
		errLogger.Debug("Unknown error type, returning EIO: %v", err)
		return syscall.EIO
	}
}

// NewFSError creates a new Error with the given operation, path, and underlying error
func NewFSError(op string, path string, err error) *Error {
	fsErr := &Error{
		Op:   op,
		Path: path,
		Err:  err,
	}
	errLogger.Debug("Created new FSError: %v", fsErr)
	return fsErr
}

// Common operation names for consistent logging and error reporting
const (
	OpLoad    = "load"    // Applying a snapshot record
	OpChdir   = "cd"      // Changing the working directory
	OpLookup  = "lookup"  // Looking up a path
	OpReadDir = "readdir" // Reading directory contents
	OpOpen    = "open"    // Opening a file
	OpRead    = "read"    // Reading file content
)
