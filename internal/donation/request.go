package donation

import "encoding/json"

// RawRequest is a donation request as received on the wire. DonationItems is
// kept raw so the validator decides what "not a list" and malformed lines mean.
type RawRequest struct {
	UserID           *int64          `json:"userID"`
	DonationCenterID *int64          `json:"donationCenterID"`
	DonationItems    json.RawMessage `json:"donationItems"`
}

// Line is a well-formed donation line.
type Line struct {
	ItemID   int64
	Quantity int64
}

// Request is a validated donation request. Lines keep input order.
type Request struct {
	UserID   int64
	CenterID int64
	Lines    []Line
	// Dropped counts input lines removed by the skip policy.
	Dropped int
}
