package donation

import (
	"bytes"
	"encoding/json"

	"bytepantry/internal/domain"
)

// Validate checks the request envelope and filters its lines.
//
// A missing or non-positive userID or donationCenterID, or a donationItems
// value that is absent, empty or not a list, fails the whole request. Single
// lines are dropped silently when itemID is missing or zero, or when
// donationQuantity is missing or not positive; the remaining lines proceed.
// A request whose lines are all dropped still proceeds with no lines.
func Validate(raw RawRequest) (Request, error) {
	if raw.UserID == nil || *raw.UserID <= 0 {
		return Request{}, &domain.ValidationError{Field: "userID", Message: "Missing or invalid userID"}
	}
	if raw.DonationCenterID == nil || *raw.DonationCenterID <= 0 {
		return Request{}, &domain.ValidationError{Field: "donationCenterID", Message: "Missing or invalid donationCenterID"}
	}

	items := bytes.TrimSpace(raw.DonationItems)
	if len(items) == 0 || bytes.Equal(items, []byte("null")) {
		return Request{}, &domain.ValidationError{Field: "donationItems", Message: "donationItems is required"}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(items, &elems); err != nil {
		return Request{}, &domain.ValidationError{Field: "donationItems", Message: "donationItems must be a list"}
	}
	if len(elems) == 0 {
		return Request{}, &domain.ValidationError{Field: "donationItems", Message: "donationItems must not be empty"}
	}

	req := Request{
		UserID:   *raw.UserID,
		CenterID: *raw.DonationCenterID,
		Lines:    make([]Line, 0, len(elems)),
	}
	for _, elem := range elems {
		line, ok := parseLine(elem)
		if !ok {
			req.Dropped++
			continue
		}
		req.Lines = append(req.Lines, line)
	}
	return req, nil
}

func parseLine(elem json.RawMessage) (Line, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
		return Line{}, false
	}
	itemID, ok := intField(fields, "itemID")
	if !ok || itemID == 0 {
		return Line{}, false
	}
	quantity, ok := intField(fields, "donationQuantity")
	if !ok || quantity <= 0 {
		return Line{}, false
	}
	return Line{ItemID: itemID, Quantity: quantity}, true
}

// intField reads an integer member. Missing, null, fractional and
// non-numeric values report false.
func intField(fields map[string]json.RawMessage, key string) (int64, bool) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, false
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}
