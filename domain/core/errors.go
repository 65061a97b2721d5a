package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound             = errors.New("resource not found")
	ErrOrganizationNotFound = fmt.Errorf("%w: organization", ErrNotFound)
	ErrSnapshotNotFound     = fmt.Errorf("%w: snapshot", ErrNotFound)
	ErrTabNotFound          = fmt.Errorf("%w: tab", ErrNotFound)

	ErrSourceUnavailable     = errors.New("spreadsheet source unavailable")
	ErrSummarizerUnavailable = errors.New("summarizer unavailable")
	ErrEmptyTab              = errors.New("tab has no header row")
	ErrRefreshInProgress     = errors.New("refresh already in progress")
)

// NewNotFoundError builds a not-found error for a named resource
func NewNotFoundError(resource string, key string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, resource, key)
}

// IsNotFoundError reports whether err is any not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSourceError reports whether err came from the spreadsheet source
func IsSourceError(err error) bool {
	return errors.Is(err, ErrSourceUnavailable) || errors.Is(err, ErrEmptyTab)
}
