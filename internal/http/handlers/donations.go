package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bytepantry/internal/domain"
	"bytepantry/internal/donation"
)

// donationRequest accepts ids as numbers or numeric strings, like PantryAdd.
type donationRequest struct {
	UserID           flexInt         `json:"userID"`
	DonationCenterID flexInt         `json:"donationCenterID"`
	DonationItems    json.RawMessage `json:"donationItems"`
}

func (d donationRequest) raw() donation.RawRequest {
	return donation.RawRequest{
		UserID:           d.UserID.ptr(),
		DonationCenterID: d.DonationCenterID.ptr(),
		DonationItems:    d.DonationItems,
	}
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := a.decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if _, err := a.Donations.Donate(r.Context(), req.raw()); err != nil {
		a.donationError(w, r, err)
		return
	}
	a.success(w)
}

// donationError maps the donation error taxonomy onto status codes. Only
// unexpected failures are logged at error level; their detail stays out of
// the response.
func (a *App) donationError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation   *domain.ValidationError
		notFound     *domain.NotFoundError
		insufficient *domain.InsufficientQuantityError
	)
	switch {
	case errors.As(err, &validation):
		a.error(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &insufficient):
		a.error(w, http.StatusBadRequest, insufficient.Error())
	case errors.As(err, &notFound):
		a.error(w, http.StatusNotFound, notFound.Error())
	default:
		a.log(r).Error().Err(err).Msg("donation processing failed")
		a.error(w, http.StatusInternalServerError, "Server error during donation processing")
	}
}

type donationResponse struct {
	DonationID         int64     `json:"donationID"`
	UserID             int64     `json:"userID"`
	DonationCenterID   int64     `json:"donationCenterID"`
	DonationCenterName string    `json:"donationCenterName"`
	FoodItems          string    `json:"foodItems"`
	DonationDate       time.Time `json:"donationDate"`
}

func (a *App) DonationsHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r.URL.Query().Get("userID"))
	if !ok {
		a.error(w, http.StatusBadRequest, "Invalid userID")
		return
	}
	receipts, err := a.Donations.History(r.Context(), userID)
	if err != nil {
		a.log(r).Error().Err(err).Int64("user_id", userID).Msg("list donations")
		a.error(w, http.StatusInternalServerError, "Server error")
		return
	}
	out := make([]donationResponse, 0, len(receipts))
	for _, rec := range receipts {
		out = append(out, donationResponse{
			DonationID:         rec.ID,
			UserID:             rec.UserID,
			DonationCenterID:   rec.CenterID,
			DonationCenterName: rec.CenterName,
			FoodItems:          rec.FoodItems,
			DonationDate:       rec.Date.UTC(),
		})
	}
	a.json(w, http.StatusOK, out)
}
