package services

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPool declines a draw when no paid ticket exists. Nothing is persisted.
	ErrEmptyPool = errors.New("no paid tickets")
	// ErrDrawInProgress rejects a draw while another one holds the draw lock.
	ErrDrawInProgress = errors.New("a draw is already in progress")
	ErrDrawNotFound   = errors.New("draw not found")
	ErrInvalidTicket  = errors.New("invalid ticket")
	// ErrInvalidCredentials hides whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// StorageError reports a failed store operation. Settlement is never
// partially committed when one is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NotificationDeliveryError reports one winner message that could not be delivered.
type NotificationDeliveryError struct {
	UserID   int64
	TicketID int64
	Err      error
}

func (e *NotificationDeliveryError) Error() string {
	return fmt.Sprintf("notify user %d for ticket %d: %v", e.UserID, e.TicketID, e.Err)
}

func (e *NotificationDeliveryError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
