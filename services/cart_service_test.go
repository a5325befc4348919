package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestCart() *CartService {
	return NewCartService(NewMemorySessionStore())
}

func snapshot() *RoomSnapshot {
	return &RoomSnapshot{RoomType: "deluxe", Price: 2500, MaxGuests: 2, MaxAvailable: 3}
}

func TestGetCartAbsentIsEmpty(t *testing.T) {
	svc := newTestCart()
	cart, err := svc.GetCart(context.Background(), "customer:1")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart) != 0 {
		t.Errorf("expected empty cart, got %d entries", len(cart))
	}
}

func TestGetCartCorruptPayloadIsEmpty(t *testing.T) {
	store := NewMemorySessionStore()
	svc := NewCartService(store)
	if err := store.Set(context.Background(), "cart:customer:1", "{not json", time.Hour); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	cart, err := svc.GetCart(context.Background(), "customer:1")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart) != 0 {
		t.Errorf("corrupt payload should read as empty cart, got %d entries", len(cart))
	}
}

func TestUpdateCartFirstAddNeedsSnapshot(t *testing.T) {
	svc := newTestCart()
	_, err := svc.UpdateCart(context.Background(), "customer:1", 7, 1, nil)
	if !errors.Is(err, ErrSnapshotRequired) {
		t.Fatalf("expected ErrSnapshotRequired, got %v", err)
	}
}

func TestUpdateCartDecrementOnMissingEntryIsNoop(t *testing.T) {
	svc := newTestCart()
	cart, err := svc.UpdateCart(context.Background(), "customer:1", 7, -1, nil)
	if err != nil {
		t.Fatalf("UpdateCart: %v", err)
	}
	if len(cart) != 0 {
		t.Errorf("decrement on absent room should be a no-op, got %d entries", len(cart))
	}
}

func TestUpdateCartClampsToMaxAvailable(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	cart, err := svc.UpdateCart(ctx, "customer:1", 7, 1, snapshot())
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if cart[7].Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", cart[7].Quantity)
	}

	// Push past the cap of 3; each further increment is a no-op.
	for i := 0; i < 5; i++ {
		if cart, err = svc.UpdateCart(ctx, "customer:1", 7, 1, nil); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	if cart[7].Quantity != 3 {
		t.Errorf("quantity = %d, want clamp at 3", cart[7].Quantity)
	}
}

func TestUpdateCartRemovesAtZero(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	if _, err := svc.UpdateCart(ctx, "customer:1", 7, 2, snapshot()); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.UpdateCart(ctx, "customer:1", 7, -5, nil)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if _, exists := cart[7]; exists {
		t.Error("entry should be removed when quantity drops to zero")
	}
}

func TestUpdateCartPlusMinusRestoresState(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	before, err := svc.UpdateCart(ctx, "customer:1", 7, 2, snapshot())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.UpdateCart(ctx, "customer:1", 7, 1, nil); err != nil {
		t.Fatalf("increment: %v", err)
	}
	after, err := svc.UpdateCart(ctx, "customer:1", 7, -1, nil)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}

	if before[7].Quantity != after[7].Quantity {
		t.Errorf("quantity after +1/-1 = %d, want %d", after[7].Quantity, before[7].Quantity)
	}
	if before[7] != after[7] {
		t.Errorf("entry changed across +1/-1: %+v vs %+v", before[7], after[7])
	}
}

func TestUpdateCartSnapshotStoredVerbatim(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	cart, err := svc.UpdateCart(ctx, "customer:1", 7, 1, snapshot())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	entry := cart[7]
	if entry.RoomType != "deluxe" || entry.Price != 2500 || entry.MaxGuests != 2 || entry.MaxAvailable != 3 {
		t.Errorf("snapshot not stored verbatim: %+v", entry)
	}
}

func TestCartPersistsAcrossReads(t *testing.T) {
	store := NewMemorySessionStore()
	svc := NewCartService(store)
	ctx := context.Background()

	if _, err := svc.UpdateCart(ctx, "customer:9", 3, 2, snapshot()); err != nil {
		t.Fatalf("add: %v", err)
	}

	// A fresh service over the same store sees the same cart, which is what
	// keeps the selection alive across page navigations.
	again := NewCartService(store)
	cart, err := again.GetCart(ctx, "customer:9")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart[3].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", cart[3].Quantity)
	}
}

func TestClearCart(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	if _, err := svc.UpdateCart(ctx, "customer:1", 7, 1, snapshot()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.ClearCart(ctx, "customer:1"); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	cart, err := svc.GetCart(ctx, "customer:1")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart) != 0 {
		t.Errorf("cart should be empty after clear, got %d entries", len(cart))
	}
}

func TestEntriesSortedByRoomID(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	for _, id := range []uint{9, 2, 5} {
		if _, err := svc.UpdateCart(ctx, "customer:1", id, 1, snapshot()); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}
	cart, err := svc.GetCart(ctx, "customer:1")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}

	entries := Entries(cart)
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].RoomID >= entries[i].RoomID {
			t.Errorf("entries not sorted: %d before %d", entries[i-1].RoomID, entries[i].RoomID)
		}
	}
}
