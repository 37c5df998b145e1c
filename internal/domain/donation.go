package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DonationCenter is a drop-off location referenced by donations.
type DonationCenter struct {
	ID      int64
	Name    string
	Address string
}

// DonationLine is one entry of a donation snapshot. It keeps the item name as
// it was at donation time because the FoodItem row may be gone afterwards.
type DonationLine struct {
	ItemName         string `json:"itemName"`
	DonationQuantity int    `json:"donationQuantity"`
}

// Donation is a committed donation with its typed snapshot.
type Donation struct {
	ID       int64
	UserID   int64
	CenterID int64
	Items    []DonationLine
	Date     time.Time
}

// DonationRecord is the persisted, immutable form of a donation. FoodItems
// holds the serialized snapshot.
type DonationRecord struct {
	ID        int64
	UserID    int64
	CenterID  int64
	FoodItems string
	Date      time.Time
}

// DonationReceipt is a stored donation joined with its center name.
type DonationReceipt struct {
	DonationRecord
	CenterName string
}

// EncodeSnapshot serializes donation lines for storage. A nil slice encodes
// as an empty list.
func EncodeSnapshot(lines []DonationLine) (string, error) {
	if lines == nil {
		lines = []DonationLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(raw), nil
}

// DecodeSnapshot parses a stored snapshot back into donation lines.
func DecodeSnapshot(blob string) ([]DonationLine, error) {
	var lines []DonationLine
	if err := json.Unmarshal([]byte(blob), &lines); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return lines, nil
}
