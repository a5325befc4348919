package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"guesthouse-backend/models"
)

// Cart TTL: a selection that sat untouched for a day is stale anyway.
const cartTTL = 24 * time.Hour

// ErrSnapshotRequired is returned when the first increment for a room does
// not carry its pricing snapshot.
var ErrSnapshotRequired = errors.New("room details snapshot required for first add")

// RoomSnapshot is the pricing snapshot captured when a room is first added.
type RoomSnapshot struct {
	RoomType     string  `json:"roomType"`
	Price        float64 `json:"price"`
	MaxGuests    int     `json:"maxGuests"`
	MaxAvailable int     `json:"maxAvailable"`
}

// CartService keeps one cart per authenticated session, persisted through
// the session store so it survives navigation between the catalog, a room
// detail page and checkout.
type CartService struct {
	Store SessionStore
}

func NewCartService(store SessionStore) *CartService {
	return &CartService{Store: store}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// GetCart loads the cart map; an absent key is an empty cart.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (map[uint]models.CartEntry, error) {
	raw, err := s.Store.Get(ctx, cartKey(sessionID))
	if errors.Is(err, ErrKeyNotFound) {
		return map[uint]models.CartEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var cart map[uint]models.CartEntry
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// Corrupt payload: treat as empty rather than wedging the session.
		return map[uint]models.CartEntry{}, nil
	}
	return cart, nil
}

// UpdateCart adjusts the quantity for roomID by delta. The first increment
// must supply the room snapshot, which is stored verbatim. Quantities are
// clamped to [0, maxAvailable]; incrementing at the cap is a no-op and a
// drop to zero removes the entry. Every mutation persists the full cart.
func (s *CartService) UpdateCart(ctx context.Context, sessionID string, roomID uint, delta int, snapshot *RoomSnapshot) (map[uint]models.CartEntry, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	entry, exists := cart[roomID]
	if !exists {
		if delta <= 0 {
			return cart, nil
		}
		if snapshot == nil {
			return nil, ErrSnapshotRequired
		}
		entry = models.CartEntry{
			RoomID:       roomID,
			RoomType:     snapshot.RoomType,
			Price:        snapshot.Price,
			MaxGuests:    snapshot.MaxGuests,
			MaxAvailable: snapshot.MaxAvailable,
		}
	}

	qty := entry.Quantity + delta
	if qty > entry.MaxAvailable {
		qty = entry.MaxAvailable
	}
	if qty <= 0 {
		delete(cart, roomID)
	} else {
		entry.Quantity = qty
		cart[roomID] = entry
	}

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart empties the session's cart.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	return s.Store.Del(ctx, cartKey(sessionID))
}

func (s *CartService) save(ctx context.Context, sessionID string, cart map[uint]models.CartEntry) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.Store.Set(ctx, cartKey(sessionID), string(raw), cartTTL)
}

// Entries returns the cart as a slice ordered by room id, for pricing and
// stable JSON output.
func Entries(cart map[uint]models.CartEntry) []models.CartEntry {
	out := make([]models.CartEntry, 0, len(cart))
	for _, entry := range cart {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
	return out
}
