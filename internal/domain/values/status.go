package values

import (
	"fmt"
)

// Status represents the outcome of a pipeline job.
type Status string

const (
	// StatusPass indicates the job's command exited zero
	StatusPass Status = "pass"
	// StatusFail indicates the job's command ran and exited non-zero
	StatusFail Status = "fail"
	// StatusError indicates the job's command could not be started
	StatusError Status = "error"
	// StatusSkipped indicates the job was filtered out
	StatusSkipped Status = "skipped"
)

// StatusFromExitCode maps a process exit status onto pass or fail.
func StatusFromExitCode(code int) Status {
	if code == 0 {
		return StatusPass
	}
	return StatusFail
}

// Precedence returns the numeric precedence of this status.
// Higher values indicate higher priority in aggregation.
//
// Precedence: Fail (3) > Error (2) > Skipped (1) > Pass (0)
func (s Status) Precedence() int {
	switch s {
	case StatusFail:
		return 3
	case StatusError:
		return 2
	case StatusSkipped:
		return 1
	case StatusPass:
		return 0
	default:
		return -1
	}
}

// IsFailure returns true if this status represents a failure or error
func (s Status) IsFailure() bool {
	return s == StatusFail || s == StatusError
}

// IsSuccess returns true if this status represents success
func (s Status) IsSuccess() bool {
	return s == StatusPass
}

// IsSkipped returns true if this status represents a skip
func (s Status) IsSkipped() bool {
	return s == StatusSkipped
}

// Validate returns an error if the status value is invalid
func (s Status) Validate() error {
	switch s {
	case StatusPass, StatusFail, StatusError, StatusSkipped:
		return nil
	default:
		return fmt.Errorf("invalid status: %s", s)
	}
}

// Worst returns the status with the highest precedence.
func Worst(statuses ...Status) Status {
	worst := StatusPass
	for _, s := range statuses {
		if s.Precedence() > worst.Precedence() {
			worst = s
		}
	}
	return worst
}
