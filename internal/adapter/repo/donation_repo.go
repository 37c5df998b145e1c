package repo

import (
	"context"
	"fmt"

	"bytepantry/internal/domain"
	"bytepantry/internal/sqlinline"
)

// ListDonationsByUser returns the user's receipts, newest first.
func (s *Store) ListDonationsByUser(ctx context.Context, userID int64) ([]domain.DonationReceipt, error) {
	rows, err := s.db.Query(ctx, sqlinline.QListDonationsByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	receipts := make([]domain.DonationReceipt, 0)
	for rows.Next() {
		var r domain.DonationReceipt
		if err := rows.Scan(&r.ID, &r.UserID, &r.CenterID, &r.CenterName, &r.FoodItems, &r.Date); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		r.Date = r.Date.UTC()
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return receipts, nil
}
