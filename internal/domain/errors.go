package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrPantryNotFound = errors.New("pantry not found")
	// ErrConflict marks a storage failure caused by concurrent writers
	// (serialization failure, deadlock, busy database). The whole
	// transaction may be retried.
	ErrConflict = errors.New("concurrent update conflict")
)

// ValidationError reports a malformed donation request. No transaction is
// opened when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a donation line that references a missing FoodItem.
type NotFoundError struct {
	ItemID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("FoodItem with ID %d not found", e.ItemID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InsufficientQuantityError reports a line asking for more than is in stock.
type InsufficientQuantityError struct {
	ItemID    int64
	Requested int64
	Available int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("Insufficient quantity for FoodItem with ID %d: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

// PersistenceError wraps an unexpected storage or transaction failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
