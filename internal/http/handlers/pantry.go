package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bytepantry/internal/domain"
	"bytepantry/internal/pantry"
)

type foodItemResponse struct {
	ItemID     int64   `json:"itemID"`
	PantryID   int64   `json:"pantryID"`
	Name       string  `json:"name"`
	Category   *string `json:"category"`
	ExpiryDate string  `json:"expiryDate"`
	Quantity   int     `json:"quantity"`
}

func toFoodItemResponse(item domain.FoodItem) foodItemResponse {
	return foodItemResponse{
		ItemID:     item.ID,
		PantryID:   item.PantryID,
		Name:       item.Name,
		Category:   item.Category,
		ExpiryDate: item.ExpiryDate.Format(domain.ExpiryDateLayout),
		Quantity:   item.Quantity,
	}
}

func (a *App) PantryList(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r.URL.Query().Get("userID"))
	if !ok {
		a.error(w, http.StatusBadRequest, "Invalid userID")
		return
	}
	items, err := a.Pantry.List(r.Context(), userID)
	if err != nil {
		a.log(r).Error().Err(err).Int64("user_id", userID).Msg("list pantry items")
		a.error(w, http.StatusInternalServerError, "Server error")
		return
	}
	out := make([]foodItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toFoodItemResponse(item))
	}
	a.json(w, http.StatusOK, out)
}

type addItemRequest struct {
	FoodName   string  `json:"foodName"`
	Category   string  `json:"category"`
	ExpiryDate string  `json:"expiryDate"`
	Quantity   int     `json:"quantity"`
	UserID     flexInt `json:"userID"`
}

func (a *App) PantryAdd(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := a.decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !req.UserID.Set || req.UserID.Value <= 0 {
		a.error(w, http.StatusBadRequest, "Invalid or missing user ID")
		return
	}

	_, err := a.Pantry.Add(r.Context(), pantry.NewItem{
		UserID:     req.UserID.Value,
		FoodName:   req.FoodName,
		Category:   req.Category,
		ExpiryDate: req.ExpiryDate,
		Quantity:   req.Quantity,
	})
	var validation *domain.ValidationError
	switch {
	case err == nil:
		a.success(w)
	case errors.As(err, &validation):
		a.error(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, domain.ErrPantryNotFound):
		a.error(w, http.StatusNotFound, "Pantry not found for user.")
	default:
		a.log(r).Error().Err(err).Int64("user_id", req.UserID.Value).Msg("add pantry item")
		a.error(w, http.StatusInternalServerError, "Failed to add item.")
	}
}

func (a *App) PantryDelete(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseID(chi.URLParam(r, "itemID"))
	if !ok {
		a.error(w, http.StatusBadRequest, "Invalid itemID")
		return
	}
	err := a.Pantry.Delete(r.Context(), itemID)
	switch {
	case err == nil:
		a.success(w)
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, fmt.Sprintf("FoodItem with ID %d not found", itemID))
	default:
		a.log(r).Error().Err(err).Int64("item_id", itemID).Msg("delete pantry item")
		a.error(w, http.StatusInternalServerError, "Server error")
	}
}
