package types

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a status change is not allowed by the record's lifecycle
var ErrInvalidTransition = errors.New("invalid status transition")

// JobStatus follows open → in_progress → completed
type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
)

var jobTransitions = map[JobStatus]JobStatus{
	JobOpen:       JobInProgress,
	JobInProgress: JobCompleted,
}

// CanTransition reports whether a job may move from s to next
func (s JobStatus) CanTransition(next JobStatus) bool {
	return jobTransitions[s] == next && next != ""
}

// CheckTransition returns an error wrapping ErrInvalidTransition when the move is not allowed
func (s JobStatus) CheckTransition(next JobStatus) error {
	if !s.CanTransition(next) {
		return fmt.Errorf("%w: job cannot move from %q to %q", ErrInvalidTransition, s, next)
	}
	return nil
}

// RentalStatus follows active → returned
type RentalStatus string

const (
	RentalActive   RentalStatus = "active"
	RentalReturned RentalStatus = "returned"
)

func (s RentalStatus) CanTransition(next RentalStatus) bool {
	return s == RentalActive && next == RentalReturned
}

func (s RentalStatus) CheckTransition(next RentalStatus) error {
	if !s.CanTransition(next) {
		return fmt.Errorf("%w: rental cannot move from %q to %q", ErrInvalidTransition, s, next)
	}
	return nil
}
