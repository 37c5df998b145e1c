package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"bytepantry/internal/domain"
)

// BeginDonationTx opens a transaction on the store's only connection. A
// second caller waits in BeginDonationTx until the first one ends, so the
// read of an item and its write never interleave with another donation.
func (s *Store) BeginDonationTx(ctx context.Context) (domain.DonationTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", classify(err))
	}
	s.logger.Debug().Msg("sqlite tx begin")
	return &donationTx{tx: tx, logger: s.logger}, nil
}

type donationTx struct {
	tx     *sql.Tx
	logger zerolog.Logger
}

func (t *donationTx) LockFoodItem(ctx context.Context, itemID int64) (domain.FoodItem, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+foodItemColumns+` FROM food_item WHERE item_id = ?`, itemID)
	item, err := scanFoodItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FoodItem{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.FoodItem{}, fmt.Errorf("select food item: %w", classify(err))
	}
	return item, nil
}

func (t *donationTx) UpdateFoodItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE food_item SET quantity = ? WHERE item_id = ?`, quantity, itemID)
	if err != nil {
		return fmt.Errorf("update food item: %w", classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update food item: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *donationTx) DeleteFoodItem(ctx context.Context, itemID int64) error {
	return deleteFoodItem(ctx, t.tx, itemID)
}

func (t *donationTx) InsertDonation(ctx context.Context, record *domain.DonationRecord) error {
	err := t.tx.QueryRowContext(ctx,
		`INSERT INTO donation (user_id, food_items, donation_center_id, donation_date)
		 VALUES (?, ?, ?, ?)
		 RETURNING donation_id`,
		record.UserID, record.FoodItems, record.CenterID, toMillis(record.Date),
	).Scan(&record.ID)
	if isConstraintViolation(err) {
		return &domain.PersistenceError{Op: "insert donation", Err: err}
	}
	if err != nil {
		return fmt.Errorf("insert donation: %w", classify(err))
	}
	return nil
}

func (t *donationTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		t.logger.Error().Err(err).Msg("sqlite tx commit error")
		return classify(err)
	}
	t.logger.Debug().Msg("sqlite tx commit")
	return nil
}

// Rollback aborts the transaction. A transaction that already ended, for
// instance because its context was cancelled, is not an error.
func (t *donationTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		t.logger.Error().Err(err).Msg("sqlite tx rollback error")
		return err
	}
	t.logger.Debug().Msg("sqlite tx rollback")
	return nil
}
