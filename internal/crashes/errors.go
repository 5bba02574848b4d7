package crashes

import (
	"errors"
	"fmt"
)

// ErrNoVersionAvailable is returned when no version could be resolved from
// the backend release list.
var ErrNoVersionAvailable = errors.New("failed to get the latest version, cannot get crashes without a version")

// RetrievalError reports a failure to reach the backend or read its response.
type RetrievalError struct {
	Op  string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("failed to get %s from API: %v", e.Op, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// ParseError reports a payload that could not be decoded into the expected
// shape.
type ParseError struct {
	What string
	// NoApp is set when the failure most likely means that no app exists for
	// the given organization, name and version.
	NoApp bool
	Err   error
}

func (e *ParseError) Error() string {
	if e.NoApp {
		return fmt.Sprintf("failed to parse json into %s, this happens when there is no app for the given organization, name and version: %v", e.What, e.Err)
	}
	return fmt.Sprintf("failed to parse json into %s: %v", e.What, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
