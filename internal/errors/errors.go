// Package errors provides standardized error handling for the Reel application.
// It defines common error types, constants, and helper functions for consistent
// error creation, wrapping, and handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrEmptyFeed      = NewClientError("feed contains no posts", FeedEmpty, nil)
	ErrInvalidConfig  = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrPostNotFound   = NewClientError("post not found", PostNotFound, nil)
	ErrNoClipboard    = NewCapabilityError("clipboard", nil)
	ErrMediaUnmounted = NewMediaError("media element not mounted", "", MediaNotMounted, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Media error kinds
	MediaLoadFailed
	MediaPlaybackFailed
	MediaNotMounted
	// Mutation error kinds
	MutationRejected
	MutationTimedOut
	// Client error kinds
	FeedEmpty
	PostNotFound
	RequestFailed
	BadResponse
	// Config error kinds
	InvalidConfig
	ConfigNotFound
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// MediaError represents a failure to load or play a post's media
type MediaError struct {
	ApplicationError
	postID string
}

// NewMediaError creates a new media error
func NewMediaError(msg, postID string, kind ErrorKind, err error) *MediaError {
	return &MediaError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		postID: postID,
	}
}

// PostID returns the id of the post whose media failed
func (e *MediaError) PostID() string {
	return e.postID
}

// MutationError represents a failed backend mutation (like, save, follow, ...)
type MutationError struct {
	ApplicationError
	op string
}

// NewMutationError creates a new mutation error
func NewMutationError(msg, op string, kind ErrorKind, err error) *MutationError {
	return &MutationError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		op: op,
	}
}

// Op returns the mutation operation that failed
func (e *MutationError) Op() string {
	return e.op
}

// CapabilityError represents an unsupported or failing platform capability
// (clipboard, haptics). These are always degraded silently.
type CapabilityError struct {
	ApplicationError
	capability string
}

// NewCapabilityError creates a new capability error
func NewCapabilityError(capability string, err error) *CapabilityError {
	return &CapabilityError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("capability %q unavailable", capability),
			err:  err,
			kind: Unknown,
		},
		capability: capability,
	}
}

// Capability returns the capability name
func (e *CapabilityError) Capability() string {
	return e.capability
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	path string
}

// NewConfigError creates a new config error
func NewConfigError(msg, path string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Path returns the config file path associated with the error
func (e *ConfigError) Path() string {
	return e.path
}

// ClientError represents errors from the feed API client
type ClientError struct {
	ApplicationError
}

// NewClientError creates a new client error
func NewClientError(msg string, kind ErrorKind, err error) *ClientError {
	return &ClientError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
	}
}

// Wrap wraps an error with a message, preserving the original error
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(fmt.Sprintf(format, args...)+": %w", err)
}
