package cart

import (
	"context"
	"errors"
	"testing"

	"foodfacts/explorer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySnapshot is an in-memory SnapshotStore for tests.
type memorySnapshot struct {
	items   []domain.LineItem
	saves   int
	loadErr error
	saveErr error
}

func (m *memorySnapshot) Load(ctx context.Context) ([]domain.LineItem, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.LineItem(nil), m.items...), nil
}

func (m *memorySnapshot) Save(ctx context.Context, items []domain.LineItem) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = items
	return nil
}

func newTestStore(t *testing.T) (*Store, *memorySnapshot) {
	t.Helper()
	snap := &memorySnapshot{}
	return NewStore(context.Background(), snap), snap
}

func product(code, name string) domain.Product {
	return domain.Product{Code: code, Name: name}
}

func TestStore_AddMergesByCode(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product("A", "Apple"))
	s.Add(ctx, product("A", "Apple"))
	s.Add(ctx, product("A", "Apple"))
	s.Add(ctx, product("B", "Banana"))

	items := s.Items()
	require.Len(t, items, 2, "one line per distinct code")
	assert.Equal(t, "A", items[0].Key)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "B", items[1].Key)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestStore_AddKeepsOriginalSnapshotAndPosition(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product("A", "Original name"))
	s.Add(ctx, product("B", "Banana"))
	s.Add(ctx, domain.Product{Code: "A", Name: "Refreshed name", Grade: "a"})

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Key, "a merged add never moves the line")
	assert.Equal(t, "Original name", items[0].Product.Name, "the first snapshot is preserved")
	assert.Empty(t, items[0].Product.Grade)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_AddWithoutCodeNeverMerges(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product("", "Mystery one"))
	s.Add(ctx, product("", "Mystery two"))

	items := s.Items()
	require.Len(t, items, 2, "code-less products are unrelated, not the same line")
	assert.NotEmpty(t, items[0].Key)
	assert.NotEmpty(t, items[1].Key)
	assert.NotEqual(t, items[0].Key, items[1].Key)
	assert.False(t, s.Contains(""), "synthetic lines are not addressable by the empty code")
}

func TestStore_RemoveAbsentCodeIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product("A", "Apple"))
	s.Remove(ctx, "missing")

	assert.Len(t, s.Items(), 1)
}

func TestStore_QuantityFloor(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product("A", "Apple"))
	s.Add(ctx, product("A", "Apple"))
	require.Equal(t, 2, s.Total())

	s.SetQuantity(ctx, "A", 0)
	assert.Empty(t, s.Items(), "quantity 0 removes the line")

	s.Add(ctx, product("A", "Apple"))
	s.SetQuantity(ctx, "A", -3)
	assert.Empty(t, s.Items(), "negative quantities remove the line too")
}

func TestStore_SetQuantityIsAbsolute(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product("A", "Apple"))
	s.SetQuantity(ctx, "A", 7)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)

	s.SetQuantity(ctx, "missing", 5)
	assert.Len(t, s.Items(), 1, "setting an absent code is a no-op")
}

func TestStore_TotalIsSumOfQuantities(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, 0, s.Total())

	s.Add(ctx, product("A", "Apple"))
	s.SetQuantity(ctx, "A", 3)
	s.Add(ctx, product("B", "Banana"))
	s.SetQuantity(ctx, "B", 2)

	assert.Equal(t, 5, s.Total(), "total counts quantities, not lines")
}

func TestStore_Contains(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	assert.False(t, s.Contains("A"))
	s.Add(ctx, product("A", "Apple"))
	assert.True(t, s.Contains("A"))
	s.Remove(ctx, "A")
	assert.False(t, s.Contains("A"))
}

func TestStore_Clear(t *testing.T) {
	s, snap := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product("A", "Apple"))
	s.Add(ctx, product("B", "Banana"))
	s.Clear(ctx)

	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Total())
	assert.Empty(t, snap.items, "the empty sequence is persisted")
}

func TestStore_PersistsEveryMutation(t *testing.T) {
	s, snap := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product("A", "Apple"))
	s.Add(ctx, product("A", "Apple"))
	s.SetQuantity(ctx, "A", 5)
	s.Remove(ctx, "A")
	s.Clear(ctx)

	assert.Equal(t, 5, snap.saves)
}

func TestStore_HydratesFromSnapshot(t *testing.T) {
	snap := &memorySnapshot{items: []domain.LineItem{
		{Key: "A", Product: product("A", "Apple"), Quantity: 1},
		{Key: "B", Product: product("B", "Banana"), Quantity: 4},
	}}

	s := NewStore(context.Background(), snap)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Key)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "B", items[1].Key)
	assert.Equal(t, 4, items[1].Quantity)
	assert.Equal(t, 5, s.Total())
}

func TestStore_HydrationFailureStartsEmpty(t *testing.T) {
	snap := &memorySnapshot{loadErr: errors.New("corrupt snapshot")}

	s := NewStore(context.Background(), snap)

	assert.Empty(t, s.Items())

	// The store still works after a failed hydration.
	s.Add(context.Background(), product("A", "Apple"))
	assert.Equal(t, 1, s.Total())
}

func TestStore_HydrationDropsInvalidLines(t *testing.T) {
	snap := &memorySnapshot{items: []domain.LineItem{
		{Key: "A", Product: product("A", "Apple"), Quantity: 0},
		{Key: "", Product: product("B", "Banana"), Quantity: 2},
	}}

	s := NewStore(context.Background(), snap)

	items := s.Items()
	require.Len(t, items, 1, "non-positive quantities never survive hydration")
	assert.Equal(t, "B", items[0].Key, "missing keys are restored from the product code")
}

func TestStore_SaveFailureIsSwallowed(t *testing.T) {
	snap := &memorySnapshot{saveErr: errors.New("disk full")}
	s := NewStore(context.Background(), snap)

	s.Add(context.Background(), product("A", "Apple"))

	assert.Equal(t, 1, s.Total(), "the in-memory cart keeps the mutation")
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product("A", "Apple"))
	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Total(), "mutating the returned slice does not touch the cart")
}
