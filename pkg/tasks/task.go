// Package tasks runs stage tasks that call out to external build systems.
package tasks

import (
	"errors"
)

type ExecutionStatus string

const (
	StatusSucceeded ExecutionStatus = "SUCCEEDED"
	StatusTerminal  ExecutionStatus = "TERMINAL"
)

var ErrMalformedStage = errors.New("tasks: malformed stage definition")

type TaskResult struct {
	Status  ExecutionStatus `json:"status"`
	Context map[string]any  `json:"context"`
	Outputs map[string]any  `json:"outputs"`
}

type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as transient so Execute tries the task again.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

func IsRetryable(err error) bool {
	var r *retryableError
	return errors.As(err, &r)
}
