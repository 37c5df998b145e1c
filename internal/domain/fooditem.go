package domain

import "time"

// ExpiryDateLayout is the wire and storage format of FoodItem.ExpiryDate.
const ExpiryDateLayout = "2006-01-02"

// Pantry is the single inventory container owned by a user.
type Pantry struct {
	ID     int64
	UserID int64
}

// FoodItem is one owned inventory row. A row never persists with a zero
// quantity; consuming the last unit deletes it.
type FoodItem struct {
	ID         int64
	PantryID   int64
	Name       string
	Category   *string
	ExpiryDate time.Time
	Quantity   int
}
