package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"bytepantry/internal/domain"
)

const foodItemColumns = `item_id, pantry_id, name, category, expiry_date, quantity`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFoodItem(row rowScanner) (domain.FoodItem, error) {
	var (
		item     domain.FoodItem
		category sql.NullString
		expiry   string
	)
	if err := row.Scan(&item.ID, &item.PantryID, &item.Name, &category, &expiry, &item.Quantity); err != nil {
		return domain.FoodItem{}, err
	}
	date, err := parseExpiry(expiry)
	if err != nil {
		return domain.FoodItem{}, err
	}
	item.Category = stringPtr(category)
	item.ExpiryDate = date
	return item, nil
}

// ListFoodItemsByUser returns the items of the user's pantry, soonest expiry
// first.
func (s *Store) ListFoodItemsByUser(ctx context.Context, userID int64) ([]domain.FoodItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT f.item_id, f.pantry_id, f.name, f.category, f.expiry_date, f.quantity
		 FROM food_item f
		 JOIN pantry p ON p.pantry_id = f.pantry_id
		 WHERE p.user_id = ?
		 ORDER BY f.expiry_date ASC, f.item_id ASC`,
		userID,
	)
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
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO food_item (pantry_id, name, category, expiry_date, quantity)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING item_id`,
		item.PantryID,
		item.Name,
		nullableString(item.Category),
		item.ExpiryDate.Format(domain.ExpiryDateLayout),
		item.Quantity,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert food item: %w", classify(err))
	}
	return nil
}

// DeleteFoodItem removes one item or returns domain.ErrNotFound.
func (s *Store) DeleteFoodItem(ctx context.Context, itemID int64) error {
	return deleteFoodItem(ctx, s.db, itemID)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func deleteFoodItem(ctx context.Context, db execer, itemID int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM food_item WHERE item_id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("delete food item: %w", classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete food item: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
