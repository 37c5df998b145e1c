package sqlite

import (
	"context"
	"fmt"

	"bytepantry/internal/domain"
)

// ListDonationsByUser returns the user's receipts, newest first.
func (s *Store) ListDonationsByUser(ctx context.Context, userID int64) ([]domain.DonationReceipt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.donation_id, d.user_id, d.donation_center_id, c.name, d.food_items, d.donation_date
		 FROM donation d
		 JOIN donation_center c ON c.center_id = d.donation_center_id
		 WHERE d.user_id = ?
		 ORDER BY d.donation_id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	receipts := make([]domain.DonationReceipt, 0)
	for rows.Next() {
		var (
			r    domain.DonationReceipt
			date int64
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.CenterID, &r.CenterName, &r.FoodItems, &date); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		r.Date = fromMillis(date)
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return receipts, nil
}
