package repo

import (
	"context"
	"fmt"

	"bytepantry/internal/domain"
	"bytepantry/internal/sqlinline"
)

// ListDonationCenters returns every center ordered by name.
func (s *Store) ListDonationCenters(ctx context.Context) ([]domain.DonationCenter, error) {
	rows, err := s.db.Query(ctx, sqlinline.QListDonationCenters)
	if err != nil {
		return nil, fmt.Errorf("list donation centers: %w", err)
	}
	defer rows.Close()

	centers := make([]domain.DonationCenter, 0)
	for rows.Next() {
		var c domain.DonationCenter
		if err := rows.Scan(&c.ID, &c.Name, &c.Address); err != nil {
			return nil, fmt.Errorf("scan donation center: %w", err)
		}
		centers = append(centers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donation centers: %w", err)
	}
	return centers, nil
}

// CreateDonationCenter inserts center and sets its ID.
func (s *Store) CreateDonationCenter(ctx context.Context, center *domain.DonationCenter) error {
	if err := s.db.QueryRow(ctx, sqlinline.QInsertDonationCenter, center.Name, center.Address).Scan(&center.ID); err != nil {
		return fmt.Errorf("insert donation center: %w", err)
	}
	return nil
}
