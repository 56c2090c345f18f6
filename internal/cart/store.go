package cart

import (
	"context"
	"sync"

	"foodfacts/explorer/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SnapshotStore persists the full cart sequence under one fixed,
// application-scoped name. The cart store defines the interface;
// backends live in internal/store.
type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.LineItem, error)
	Save(ctx context.Context, items []domain.LineItem) error
}

// Store owns the cart aggregate. It is the sole writer of the durable
// snapshot: every mutation saves the entire resulting sequence before
// returning, and save failures are logged and swallowed.
type Store struct {
	mu       sync.Mutex
	items    []domain.LineItem
	snapshot SnapshotStore
}

// NewStore hydrates the cart from the last durable snapshot. A missing,
// unreadable or malformed snapshot yields an empty cart, never an error.
func NewStore(ctx context.Context, snapshot SnapshotStore) *Store {
	s := &Store{snapshot: snapshot}

	items, err := snapshot.Load(ctx)
	if err != nil {
		log.Warnf("Failed to hydrate cart snapshot, starting empty: %v", err)
		return s
	}

	s.items = sanitize(items)
	return s
}

// sanitize drops hydrated lines that violate the cart invariants and
// restores missing line keys.
func sanitize(items []domain.LineItem) []domain.LineItem {
	out := items[:0]
	for _, item := range items {
		if item.Quantity < 1 {
			log.Warnf("Dropping cart line %q with quantity %d from snapshot", item.Key, item.Quantity)
			continue
		}
		if item.Key == "" {
			item.Key = item.Product.Code
		}
		if item.Key == "" {
			item.Key = uuid.NewString()
		}
		out = append(out, item)
	}
	return out
}

// Add appends the product with quantity 1, or increments the quantity of
// the existing line with the same code. A merged add keeps the original
// product snapshot and the line's position. Products without a code get
// a synthetic line key so unrelated code-less products never merge.
func (s *Store) Add(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.Code != "" {
		for i := range s.items {
			if s.items[i].Key == product.Code {
				s.items[i].Quantity++
				s.persist(ctx)
				return
			}
		}
	}

	key := product.Code
	if key == "" {
		key = uuid.NewString()
	}

	s.items = append(s.items, domain.LineItem{
		Key:      key,
		Product:  product,
		Quantity: 1,
	})
	s.persist(ctx)
}

// Remove deletes the line keyed by code. Absent codes are a no-op.
func (s *Store) Remove(ctx context.Context, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(code)
	s.persist(ctx)
}

// SetQuantity sets the line's quantity to the given absolute value.
// A quantity of zero or below removes the line instead; quantities in
// the cart are never below 1. Absent codes are a no-op.
func (s *Store) SetQuantity(ctx context.Context, code string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(code)
		s.persist(ctx)
		return
	}

	for i := range s.items {
		if s.items[i].Key == code {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persist(ctx)
}

// Clear replaces the cart with an empty sequence.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist(ctx)
}

// Total returns the sum of all line quantities, not the line count.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Contains reports whether a line with the given code exists.
func (s *Store) Contains(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.Key == code {
			return true
		}
	}
	return false
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.LineItem(nil), s.items...)
}

func (s *Store) remove(code string) {
	out := s.items[:0]
	for _, item := range s.items {
		if item.Key != code {
			out = append(out, item)
		}
	}
	s.items = out
}

// persist writes the whole cart snapshot. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	items := append([]domain.LineItem(nil), s.items...)
	if err := s.snapshot.Save(ctx, items); err != nil {
		log.Warnf("Failed to persist cart snapshot: %v", err)
	}
}
