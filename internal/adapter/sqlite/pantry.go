package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bytepantry/internal/domain"
)

// PantryIDByUser returns the user's pantry or domain.ErrPantryNotFound.
func (s *Store) PantryIDByUser(ctx context.Context, userID int64) (int64, error) {
	var pantryID int64
	err := s.db.QueryRowContext(ctx, `SELECT pantry_id FROM pantry WHERE user_id = ?`, userID).Scan(&pantryID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrPantryNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("select pantry: %w", err)
	}
	return pantryID, nil
}

// EnsurePantry returns the user's pantry, creating it on first use.
func (s *Store) EnsurePantry(ctx context.Context, userID int64) (int64, error) {
	var pantryID int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO pantry (user_id) VALUES (?)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = excluded.user_id
		 RETURNING pantry_id`,
		userID,
	).Scan(&pantryID)
	if err != nil {
		return 0, fmt.Errorf("ensure pantry: %w", classify(err))
	}
	return pantryID, nil
}
