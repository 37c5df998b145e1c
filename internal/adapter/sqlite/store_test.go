package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"bytepantry/internal/domain"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "pantry.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.ExpiryDateLayout, value)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  ", zerolog.Nop()); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestOpenTwiceKeepsData(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pantry.db")
	first, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	pantryID, err := first.EnsurePantry(context.Background(), 7)
	if err != nil {
		t.Fatalf("ensure pantry: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer second.Close()
	got, err := second.PantryIDByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("pantry by user: %v", err)
	}
	if got != pantryID {
		t.Fatalf("pantry id = %d, want %d", got, pantryID)
	}
}

func TestEnsurePantryIsIdempotent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	if _, err := store.PantryIDByUser(ctx, 1); !errors.Is(err, domain.ErrPantryNotFound) {
		t.Fatalf("expected ErrPantryNotFound, got %v", err)
	}
	first, err := store.EnsurePantry(ctx, 1)
	if err != nil {
		t.Fatalf("ensure pantry: %v", err)
	}
	second, err := store.EnsurePantry(ctx, 1)
	if err != nil {
		t.Fatalf("ensure pantry again: %v", err)
	}
	if first != second {
		t.Fatalf("pantry id changed: %d then %d", first, second)
	}
}

func TestFoodItemsListedBySoonestExpiry(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	pantryID, err := store.EnsurePantry(ctx, 1)
	if err != nil {
		t.Fatalf("ensure pantry: %v", err)
	}
	dairy := "Dairy"
	items := []*domain.FoodItem{
		{PantryID: pantryID, Name: "Rice", ExpiryDate: mustDate(t, "2027-03-01"), Quantity: 2},
		{PantryID: pantryID, Name: "Milk", Category: &dairy, ExpiryDate: mustDate(t, "2026-11-02"), Quantity: 1},
	}
	for _, item := range items {
		if err := store.CreateFoodItem(ctx, item); err != nil {
			t.Fatalf("create food item: %v", err)
		}
		if item.ID == 0 {
			t.Fatal("expected item id to be set")
		}
	}

	got, err := store.ListFoodItemsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("list food items: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("items = %d, want 2", len(got))
	}
	if got[0].Name != "Milk" || got[1].Name != "Rice" {
		t.Fatalf("order = %q, %q; want Milk, Rice", got[0].Name, got[1].Name)
	}
	if got[0].Category == nil || *got[0].Category != "Dairy" {
		t.Fatalf("category = %v, want Dairy", got[0].Category)
	}
	if got[1].Category != nil {
		t.Fatalf("category = %q, want nil", *got[1].Category)
	}
	if !got[0].ExpiryDate.Equal(mustDate(t, "2026-11-02")) {
		t.Fatalf("expiry = %s", got[0].ExpiryDate)
	}

	other, err := store.ListFoodItemsByUser(ctx, 2)
	if err != nil {
		t.Fatalf("list other user: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("other user items = %d, want 0", len(other))
	}
}

func TestDeleteFoodItemMissing(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.DeleteFoodItem(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDonationCentersOrderedByName(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	for _, name := range []string{"Westside Pantry", "Eastside Shelter"} {
		if err := store.CreateDonationCenter(ctx, &domain.DonationCenter{Name: name, Address: "1 Main St"}); err != nil {
			t.Fatalf("create center: %v", err)
		}
	}
	centers, err := store.ListDonationCenters(ctx)
	if err != nil {
		t.Fatalf("list centers: %v", err)
	}
	if len(centers) != 2 || centers[0].Name != "Eastside Shelter" {
		t.Fatalf("centers = %#v", centers)
	}
}

func seedItem(t *testing.T, store *Store, userID int64, name string, qty int) domain.FoodItem {
	t.Helper()
	ctx := context.Background()
	pantryID, err := store.EnsurePantry(ctx, userID)
	if err != nil {
		t.Fatalf("ensure pantry: %v", err)
	}
	item := domain.FoodItem{PantryID: pantryID, Name: name, ExpiryDate: mustDate(t, "2027-01-01"), Quantity: qty}
	if err := store.CreateFoodItem(ctx, &item); err != nil {
		t.Fatalf("create food item: %v", err)
	}
	return item
}

func seedCenter(t *testing.T, store *Store) domain.DonationCenter {
	t.Helper()
	center := domain.DonationCenter{Name: "Central Food Bank", Address: "2 Market St"}
	if err := store.CreateDonationCenter(context.Background(), &center); err != nil {
		t.Fatalf("create center: %v", err)
	}
	return center
}

func TestDonationTxCommit(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	center := seedCenter(t, store)
	beans := seedItem(t, store, 1, "Beans", 5)
	soup := seedItem(t, store, 1, "Soup", 2)

	tx, err := store.BeginDonationTx(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	locked, err := tx.LockFoodItem(ctx, beans.ID)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if locked.Quantity != 5 || locked.Name != "Beans" {
		t.Fatalf("locked = %#v", locked)
	}
	if err := tx.UpdateFoodItemQuantity(ctx, beans.ID, 3); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := tx.DeleteFoodItem(ctx, soup.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	at := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)
	record := &domain.DonationRecord{UserID: 1, CenterID: center.ID, FoodItems: `[{"itemName":"Beans","donationQuantity":2}]`, Date: at}
	if err := tx.InsertDonation(ctx, record); err != nil {
		t.Fatalf("insert donation: %v", err)
	}
	if record.ID == 0 {
		t.Fatal("expected donation id to be set")
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback after commit should be a no-op: %v", err)
	}

	items, err := store.ListFoodItemsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Fatalf("items = %#v", items)
	}

	receipts, err := store.ListDonationsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("receipts = %d, want 1", len(receipts))
	}
	if receipts[0].CenterName != "Central Food Bank" || !receipts[0].Date.Equal(at) {
		t.Fatalf("receipt = %#v", receipts[0])
	}
	if receipts[0].FoodItems != record.FoodItems {
		t.Fatalf("food items = %q, want %q", receipts[0].FoodItems, record.FoodItems)
	}
}

func TestDonationTxRollbackDiscardsChanges(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	center := seedCenter(t, store)
	item := seedItem(t, store, 1, "Beans", 5)

	tx, err := store.BeginDonationTx(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := tx.DeleteFoodItem(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := tx.InsertDonation(ctx, &domain.DonationRecord{UserID: 1, CenterID: center.ID, FoodItems: "[]", Date: time.Now()}); err != nil {
		t.Fatalf("insert donation: %v", err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	items, err := store.ListFoodItemsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("items = %#v", items)
	}
	receipts, err := store.ListDonationsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(receipts) != 0 {
		t.Fatalf("receipts = %d, want 0", len(receipts))
	}
}

func TestLockFoodItemMissing(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	tx, err := store.BeginDonationTx(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.LockFoodItem(ctx, 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDonationRecordsAreImmutable(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	center := seedCenter(t, store)

	tx, err := store.BeginDonationTx(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	record := &domain.DonationRecord{UserID: 1, CenterID: center.ID, FoodItems: "[]", Date: time.Now()}
	if err := tx.InsertDonation(ctx, record); err != nil {
		t.Fatalf("insert donation: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if _, err := store.db.ExecContext(ctx, `UPDATE donation SET food_items = '[{}]' WHERE donation_id = ?`, record.ID); err == nil {
		t.Fatal("expected update of a donation to fail")
	}
	if _, err := store.db.ExecContext(ctx, `DELETE FROM donation WHERE donation_id = ?`, record.ID); err == nil {
		t.Fatal("expected delete of a donation to fail")
	}
}

func TestInsertDonationUnknownCenterFails(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	tx, err := store.BeginDonationTx(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.InsertDonation(ctx, &domain.DonationRecord{UserID: 1, CenterID: 999, FoodItems: "[]", Date: time.Now()})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
	if errors.Is(err, domain.ErrConflict) {
		t.Fatalf("constraint violation must not be retryable: %v", err)
	}
	var persistence *domain.PersistenceError
	if !errors.As(err, &persistence) || persistence.Op != "insert donation" {
		t.Fatalf("expected insert donation persistence error, got %v", err)
	}
}

func TestClassifyLeavesOtherErrorsAlone(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	if got := classify(base); got != base {
		t.Fatalf("classify changed a plain error: %v", got)
	}
	if classify(nil) != nil {
		t.Fatal("classify(nil) should be nil")
	}
}
