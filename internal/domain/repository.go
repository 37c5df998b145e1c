package domain

import "context"

// PantryRepository maps users to their pantry.
type PantryRepository interface {
	PantryIDByUser(ctx context.Context, userID int64) (int64, error)
	EnsurePantry(ctx context.Context, userID int64) (int64, error)
}

// FoodItemRepository handles the plain CRUD around inventory rows.
type FoodItemRepository interface {
	ListFoodItemsByUser(ctx context.Context, userID int64) ([]FoodItem, error)
	CreateFoodItem(ctx context.Context, item *FoodItem) error
	DeleteFoodItem(ctx context.Context, itemID int64) error
}

// DonationCenterRepository lists and registers donation centers.
type DonationCenterRepository interface {
	ListDonationCenters(ctx context.Context) ([]DonationCenter, error)
	CreateDonationCenter(ctx context.Context, center *DonationCenter) error
}

// DonationRepository reads committed donation receipts.
type DonationRepository interface {
	ListDonationsByUser(ctx context.Context, userID int64) ([]DonationReceipt, error)
}

// DonationTx is a transaction handle scoped to one donation attempt. Reads
// through LockFoodItem hold the row until Commit or Rollback.
type DonationTx interface {
	LockFoodItem(ctx context.Context, itemID int64) (FoodItem, error)
	UpdateFoodItemQuantity(ctx context.Context, itemID int64, quantity int) error
	DeleteFoodItem(ctx context.Context, itemID int64) error
	InsertDonation(ctx context.Context, record *DonationRecord) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DonationTxBeginner opens donation transactions.
type DonationTxBeginner interface {
	BeginDonationTx(ctx context.Context) (DonationTx, error)
}

// Store is the full storage surface used by the API.
type Store interface {
	PantryRepository
	FoodItemRepository
	DonationCenterRepository
	DonationRepository
	DonationTxBeginner
	Close() error
}
