package donation

import (
	"context"
	"fmt"
	"time"

	"bytepantry/internal/domain"
)

// recordDonation serializes the snapshot and appends the receipt as the last
// statement of tx.
func recordDonation(ctx context.Context, tx domain.DonationTx, req Request, snapshot []domain.DonationLine, at time.Time) (*domain.Donation, error) {
	blob, err := domain.EncodeSnapshot(snapshot)
	if err != nil {
		return nil, err
	}

	record := &domain.DonationRecord{
		UserID:    req.UserID,
		CenterID:  req.CenterID,
		FoodItems: blob,
		Date:      at.UTC(),
	}
	if err := tx.InsertDonation(ctx, record); err != nil {
		return nil, fmt.Errorf("insert donation: %w", err)
	}

	return &domain.Donation{
		ID:       record.ID,
		UserID:   record.UserID,
		CenterID: record.CenterID,
		Items:    snapshot,
		Date:     record.Date,
	}, nil
}
