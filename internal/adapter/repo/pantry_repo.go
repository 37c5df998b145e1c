package repo

import (
	"context"
	"fmt"

	"bytepantry/internal/domain"
	"bytepantry/internal/infra"
	"bytepantry/internal/sqlinline"
)

// PantryIDByUser returns the user's pantry or domain.ErrPantryNotFound.
func (s *Store) PantryIDByUser(ctx context.Context, userID int64) (int64, error) {
	var pantryID int64
	err := s.db.QueryRow(ctx, sqlinline.QSelectPantryIDByUser, userID).Scan(&pantryID)
	if infra.IsNoRows(err) {
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
	if err := s.db.QueryRow(ctx, sqlinline.QEnsurePantry, userID).Scan(&pantryID); err != nil {
		return 0, fmt.Errorf("ensure pantry: %w", err)
	}
	return pantryID, nil
}
