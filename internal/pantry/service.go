// Package pantry maps users to their pantry and manages the items in it.
package pantry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bytepantry/internal/domain"
)

type Service struct {
	pantries domain.PantryRepository
	items    domain.FoodItemRepository
	logger   zerolog.Logger
}

func NewService(pantries domain.PantryRepository, items domain.FoodItemRepository, logger zerolog.Logger) *Service {
	return &Service{pantries: pantries, items: items, logger: logger}
}

func invalidUser() error {
	return &domain.ValidationError{Field: "userID", Message: "Invalid or missing user ID"}
}

// Resolve returns the user's pantry or domain.ErrPantryNotFound.
func (s *Service) Resolve(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, invalidUser()
	}
	return s.pantries.PantryIDByUser(ctx, userID)
}

// Ensure returns the user's pantry, creating it if the user has none.
func (s *Service) Ensure(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, invalidUser()
	}
	pantryID, err := s.pantries.EnsurePantry(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("user_id", userID).Int64("pantry_id", pantryID).Msg("pantry ensured")
	return pantryID, nil
}

// List returns the user's items, soonest expiry first. A user without a
// pantry has no items.
func (s *Service) List(ctx context.Context, userID int64) ([]domain.FoodItem, error) {
	if userID <= 0 {
		return nil, &domain.ValidationError{Field: "userID", Message: "Invalid userID"}
	}
	return s.items.ListFoodItemsByUser(ctx, userID)
}

// NewItem is an item as submitted by a client.
type NewItem struct {
	UserID     int64
	FoodName   string
	Category   string
	ExpiryDate string
	Quantity   int
}

// Add stores a new item in the user's pantry.
func (s *Service) Add(ctx context.Context, in NewItem) (*domain.FoodItem, error) {
	if in.UserID <= 0 {
		return nil, invalidUser()
	}
	name := strings.TrimSpace(in.FoodName)
	if name == "" {
		return nil, &domain.ValidationError{Field: "foodName", Message: "foodName is required"}
	}
	if in.Quantity < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}
	expiry, err := time.Parse(domain.ExpiryDateLayout, strings.TrimSpace(in.ExpiryDate))
	if err != nil {
		return nil, &domain.ValidationError{Field: "expiryDate", Message: "expiryDate must be YYYY-MM-DD"}
	}

	pantryID, err := s.Resolve(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	item := &domain.FoodItem{
		PantryID:   pantryID,
		Name:       name,
		Category:   NormalizeCategory(in.Category),
		ExpiryDate: expiry,
		Quantity:   in.Quantity,
	}
	if err := s.items.CreateFoodItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create food item: %w", err)
	}
	s.logger.Info().Int64("user_id", in.UserID).Int64("item_id", item.ID).Msg("food item added")
	return item, nil
}

// Delete removes one item. A missing item reports domain.ErrNotFound.
func (s *Service) Delete(ctx context.Context, itemID int64) error {
	if itemID <= 0 {
		return &domain.ValidationError{Field: "itemID", Message: "Invalid itemID"}
	}
	if err := s.items.DeleteFoodItem(ctx, itemID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete food item: %w", err)
	}
	s.logger.Info().Int64("item_id", itemID).Msg("food item deleted")
	return nil
}

// NormalizeCategory trims and title-cases a category. Blank categories are
// stored as null.
func NormalizeCategory(raw string) *string {
	trimmed := strings.Join(strings.Fields(raw), " ")
	if trimmed == "" {
		return nil
	}
	// cases.Caser keeps state and is not safe for concurrent use.
	titled := cases.Title(language.English).String(strings.ToLower(trimmed))
	return &titled
}
