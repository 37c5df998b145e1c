package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bytepantry/internal/domain"
	"bytepantry/internal/infra"
	"bytepantry/internal/sqlinline"
)

func scanFoodItem(row pgx.Row) (domain.FoodItem, error) {
	var item domain.FoodItem
	err := row.Scan(&item.ID, &item.PantryID, &item.Name, &item.Category, &item.ExpiryDate, &item.Quantity)
	return item, err
}

// ListFoodItemsByUser returns the items of the user's pantry, soonest expiry
// first.
func (s *Store) ListFoodItemsByUser(ctx context.Context, userID int64) ([]domain.FoodItem, error) {
	rows, err := s.db.Query(ctx, sqlinline.QListFoodItemsByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("list food items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.FoodItem, 0)
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food items: %w", err)
	}
	return items, nil
}

// CreateFoodItem inserts item and sets its ID.
func (s *Store) CreateFoodItem(ctx context.Context, item *domain.FoodItem) error {
	err := s.db.QueryRow(ctx, sqlinline.QInsertFoodItem,
		item.PantryID,
		item.Name,
		item.Category,
		item.ExpiryDate,
		item.Quantity,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert food item: %w", err)
	}
	return nil
}

// DeleteFoodItem removes one item or returns domain.ErrNotFound.
func (s *Store) DeleteFoodItem(ctx context.Context, itemID int64) error {
	return deleteFoodItem(ctx, s.db, itemID)
}

func deleteFoodItem(ctx context.Context, db infra.SQLExecutor, itemID int64) error {
	tag, err := db.Exec(ctx, sqlinline.QDeleteFoodItem, itemID)
	if err != nil {
		return fmt.Errorf("delete food item: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
