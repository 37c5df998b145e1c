package donation

import (
	"context"
	"errors"
	"fmt"

	"bytepantry/internal/domain"
)

// applyLines runs read, decide and mutate for every line in input order on
// tx and returns the snapshot. The first failing line aborts the loop; later
// lines are never read.
func applyLines(ctx context.Context, tx domain.DonationTx, lines []Line) ([]domain.DonationLine, error) {
	snapshot := make([]domain.DonationLine, 0, len(lines))
	for _, line := range lines {
		entry, err := applyLine(ctx, tx, line)
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, entry)
	}
	return snapshot, nil
}

func applyLine(ctx context.Context, tx domain.DonationTx, line Line) (domain.DonationLine, error) {
	item, err := tx.LockFoodItem(ctx, line.ItemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DonationLine{}, &domain.NotFoundError{ItemID: line.ItemID}
		}
		return domain.DonationLine{}, fmt.Errorf("read food item %d: %w", line.ItemID, err)
	}

	if line.Quantity > int64(item.Quantity) {
		return domain.DonationLine{}, &domain.InsufficientQuantityError{
			ItemID:    line.ItemID,
			Requested: line.Quantity,
			Available: item.Quantity,
		}
	}

	// Quantity fits in int once it is no larger than the stock.
	donated := int(line.Quantity)
	remaining := item.Quantity - donated
	if remaining == 0 {
		err = tx.DeleteFoodItem(ctx, line.ItemID)
	} else {
		err = tx.UpdateFoodItemQuantity(ctx, line.ItemID, remaining)
	}
	if err != nil {
		return domain.DonationLine{}, fmt.Errorf("apply donation to food item %d: %w", line.ItemID, err)
	}

	return domain.DonationLine{ItemName: item.Name, DonationQuantity: donated}, nil
}
