package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound is returned when no store holds the order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidStatus is returned for unknown status strings.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidTransition is returned when the lifecycle forbids a status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrSyncFailed is matched by every SyncError.
	ErrSyncFailed = errors.New("order sync failed")
)

// TransitionError describes a rejected status change.
type TransitionError struct {
	OrderID string
	From    Status
	To      Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %s: cannot move from %s to %s", e.OrderID, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// SyncError reports that one store could not be brought in line. Manual retry is expected.
// OrderID is empty when a full reconciliation pass failed.
type SyncError struct {
	OrderID string
	Store   string
	Err     error
}

func (e *SyncError) Error() string {
	if e.OrderID == "" {
		return fmt.Sprintf("sync %s: %v", e.Store, e.Err)
	}
	return fmt.Sprintf("sync order %s into %s: %v", e.OrderID, e.Store, e.Err)
}

func (e *SyncError) Unwrap() []error {
	return []error{ErrSyncFailed, e.Err}
}
