package repo

import (
	"context"
	"fmt"

	"bytepantry/internal/domain"
	"bytepantry/internal/infra"
	"bytepantry/internal/sqlinline"
)

// BeginDonationTx opens a READ COMMITTED transaction. LockFoodItem takes a
// row lock, so two donations of the same item queue on that row and the
// second one reads the quantity the first one committed.
func (s *Store) BeginDonationTx(ctx context.Context) (domain.DonationTx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return &donationTx{tx: tx}, nil
}

type donationTx struct {
	tx infra.SQLTx
}

func (t *donationTx) LockFoodItem(ctx context.Context, itemID int64) (domain.FoodItem, error) {
	item, err := scanFoodItem(t.tx.QueryRow(ctx, sqlinline.QLockFoodItem, itemID))
	if infra.IsNoRows(err) {
		return domain.FoodItem{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.FoodItem{}, fmt.Errorf("lock food item: %w", classify(err))
	}
	return item, nil
}

func (t *donationTx) UpdateFoodItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	tag, err := t.tx.Exec(ctx, sqlinline.QUpdateFoodItemQuantity, itemID, quantity)
	if err != nil {
		return fmt.Errorf("update food item: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *donationTx) DeleteFoodItem(ctx context.Context, itemID int64) error {
	return deleteFoodItem(ctx, t.tx, itemID)
}

func (t *donationTx) InsertDonation(ctx context.Context, record *domain.DonationRecord) error {
	err := t.tx.QueryRow(ctx, sqlinline.QInsertDonation,
		record.UserID,
		record.FoodItems,
		record.CenterID,
		record.Date,
	).Scan(&record.ID)
	if infra.IsConstraintViolation(err) {
		return &domain.PersistenceError{Op: "insert donation", Err: err}
	}
	if err != nil {
		return fmt.Errorf("insert donation: %w", classify(err))
	}
	return nil
}

func (t *donationTx) Commit(ctx context.Context) error {
	return classify(t.tx.Commit(ctx))
}

func (t *donationTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
