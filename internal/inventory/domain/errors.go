package domain

import "fmt"

// NotFoundError is returned when no inventory record exists for a
// (store, variant) pair on an operation that requires one.
type NotFoundError struct {
	VariantID string
	StoreID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("inventory not found for variant %s in store %s", e.VariantID, e.StoreID)
}

// InsufficientStockError is returned when a reservation asks for more than
// the available quantity.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}

// InsufficientCommittedStockError is returned when a consume or release asks
// for more than the committed quantity.
type InsufficientCommittedStockError struct {
	Committed int
	Requested int
}

func (e *InsufficientCommittedStockError) Error() string {
	return fmt.Sprintf("insufficient committed stock: committed %d, requested %d", e.Committed, e.Requested)
}

// InvalidQuantityError is returned when a non-positive quantity is supplied
// where a positive one is required.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d: must be greater than 0", e.Quantity)
}

// PersistenceError wraps an underlying storage failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("inventory storage failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
