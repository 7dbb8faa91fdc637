package render

import (
	"fmt"
	"strings"
)

// ValidationError means the project cannot be rendered as described: no
// scenes, or referenced assets missing from storage. It is raised before any
// encoder invocation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// EncodeError means an encoder subprocess exited non-zero or timed out.
// It carries the stage name and the subprocess diagnostic stream.
type EncodeError struct {
	Stage  string
	Stderr string
	Err    error
}

func (e *EncodeError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// StorageError means the deliverable could not be persisted to durable
// storage after a successful encode.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
